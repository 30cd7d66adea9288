// Command seed-tours loads tours from a YAML file and creates them through
// the Tours API.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// dateFields are checked before posting so a bad fixture fails without touching the API.
var dateFields = []string{"StartDate", "EndDate"}

func main() {
	apiBase := flag.String("api", "http://127.0.0.1:3000", "Tours API base URL")
	path := flag.String("file", "provision/tours.yml", "YAML file with the tours to create")
	flag.Parse()

	tours, err := loadTours(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", *path, err)
		os.Exit(1)
	}
	if len(tours) == 0 {
		fmt.Println("No tours to create.")
		return
	}

	cli := &http.Client{Timeout: 15 * time.Second}

	var anyFailed bool
	for _, t := range tours {
		name, _ := t["TourName"].(string)
		if err := postTour(cli, *apiBase, t); err != nil {
			anyFailed = true
			fmt.Fprintf(os.Stderr, "Failed to add %q: %v\n", name, err)
			continue
		}
		fmt.Printf("Added %q\n", name)
	}

	if anyFailed {
		os.Exit(2)
	}
}

func postTour(cli *http.Client, apiBase string, t map[string]any) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	resp, err := cli.Post(strings.TrimRight(apiBase, "/")+"/api/Tours", "application/json", bytes.NewReader(b))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// loadTours accepts either a bare list or {tours: [...]}.
func loadTours(path string) ([]map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data any
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, err
	}

	var items []any
	switch v := data.(type) {
	case []any:
		items = v
	case map[string]any:
		if arr, ok := v["tours"].([]any); ok {
			items = arr
		}
	}

	var out []map[string]any
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		if err := normalizeDates(m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func normalizeDates(m map[string]any) error {
	for _, k := range dateFields {
		switch v := m[k].(type) {
		case time.Time:
			m[k] = v.UTC().Format(time.RFC3339)
		case string:
			if _, err := time.Parse(time.RFC3339, v); err == nil {
				continue
			}
			if _, err := time.Parse(time.DateOnly, v); err != nil {
				return fmt.Errorf("%s: %q is neither RFC 3339 nor YYYY-MM-DD", k, v)
			}
		}
	}
	return nil
}
