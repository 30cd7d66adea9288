package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tkwed/tours-api/internal/db"
	"github.com/tkwed/tours-api/internal/server"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	d, err := db.Open(context.Background(), db.Options{
		Driver:       "sqlite3",
		DSN:          filepath.Join(t.TempDir(), "tours.db"),
		MaxOpenConns: 1,
		AutoMigrate:  true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	return server.NewRouter(server.Options{
		Logger:      zaptest.NewLogger(t),
		Store:       d,
		ServiceName: "tours-api-test",
		CORSOrigins: []string{"*"},
	})
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func listTours(t *testing.T, r http.Handler) []map[string]any {
	t.Helper()
	w := do(r, http.MethodGet, "/api/Tours", "")
	require.Equal(t, http.StatusOK, w.Code)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

const parisBody = `{
	"TourName": "Paris Getaway",
	"Description": "Four days in Paris",
	"Destination": "Paris",
	"Itinerary": "Day 1: Louvre",
	"Highlights": "Eiffel Tower",
	"StartDate": "2025-06-01T09:00:00Z",
	"EndDate": "2025-06-05T18:00:00Z",
	"Price": 999.0,
	"AvailableSeats": 20,
	"TourType": "City",
	"ImageURL": "https://img.example/paris.jpg",
	"Rating": 4.5,
	"ReviewsCount": 12
}`

func TestCreateThenList(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/api/Tours", parisBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "New tour added successfully", w.Body.String())

	tours := listTours(t, r)
	require.Len(t, tours, 1)
	assert.Equal(t, "Paris Getaway", tours[0]["TourName"])
	assert.Equal(t, 999.0, tours[0]["Price"])
	assert.Equal(t, 20.0, tours[0]["AvailableSeats"])
	assert.NotZero(t, tours[0]["TourID"])
}

func TestGetRoundTrip(t *testing.T) {
	r := setupRouter(t)
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/Tours", parisBody).Code)
	id := listTours(t, r)[0]["TourID"]

	w := do(r, http.MethodGet, "/api/Tours/"+jsonNumber(id), "")
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	var want map[string]any
	require.NoError(t, json.Unmarshal([]byte(parisBody), &want))
	want["TourID"] = id
	assert.Equal(t, want, got)
}

func TestPlainDatesAccepted(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/api/Tours", `{"TourName":"A","StartDate":"2025-06-01","EndDate":"2025-06-05","Price":10}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	id := jsonNumber(listTours(t, r)[0]["TourID"])
	w = do(r, http.MethodGet, "/api/Tours/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "2025-06-01T00:00:00Z", got["StartDate"])
	assert.Equal(t, "2025-06-05T00:00:00Z", got["EndDate"])

	w = do(r, http.MethodPut, "/api/Tours/"+id, `{"TourName":"A","StartDate":"2025-07-01"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(r, http.MethodGet, "/api/Tours/"+id, "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "2025-07-01T00:00:00Z", got["StartDate"])
	assert.Nil(t, got["EndDate"])
}

func TestCreateWithoutBody(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/api/Tours", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "New tour added successfully", w.Body.String())

	tours := listTours(t, r)
	require.Len(t, tours, 1)
	assert.NotZero(t, tours[0]["TourID"])
	assert.Nil(t, tours[0]["TourName"])
	assert.Nil(t, tours[0]["Price"])
}

func TestGetMissing(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/api/Tours/99999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Tour not found", w.Body.String())
}

func TestUpdateOverwritesAllFields(t *testing.T) {
	r := setupRouter(t)
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/Tours", parisBody).Code)
	id := jsonNumber(listTours(t, r)[0]["TourID"])

	w := do(r, http.MethodPut, "/api/Tours/"+id, `{"TourName":"Rome Escape","Price":1200.5,"AvailableSeats":8}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tour updated successfully", w.Body.String())

	w = do(r, http.MethodGet, "/api/Tours/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Rome Escape", got["TourName"])
	assert.Equal(t, 1200.5, got["Price"])
	assert.Equal(t, 8.0, got["AvailableSeats"])
	assert.Nil(t, got["Destination"])
	assert.Nil(t, got["StartDate"])
	assert.Nil(t, got["Rating"])
}

func TestUpdateMissingLeavesStoreUnchanged(t *testing.T) {
	r := setupRouter(t)
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/Tours", parisBody).Code)
	before := listTours(t, r)

	w := do(r, http.MethodPut, "/api/Tours/99999", `{"TourName":"Ghost"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Tour not found", w.Body.String())

	assert.Equal(t, before, listTours(t, r))
}

func TestDelete(t *testing.T) {
	r := setupRouter(t)
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/Tours", parisBody).Code)
	id := jsonNumber(listTours(t, r)[0]["TourID"])

	w := do(r, http.MethodDelete, "/api/Tours/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tour deleted successfully", w.Body.String())
	assert.Empty(t, listTours(t, r))
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/Tours/"+id, "").Code)

	// A missing id is still reported as deleted.
	w = do(r, http.MethodDelete, "/api/Tours/99999", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tour deleted successfully", w.Body.String())
}

func TestCORS(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/Tours", nil)
	req.Header.Set("Origin", "http://frontend.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")

	req = httptest.NewRequest(http.MethodGet, "/api/Tours", nil)
	req.Header.Set("Origin", "http://frontend.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/api/Tours", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/Tours", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestHealthAndMetrics(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	do(r, http.MethodGet, "/api/Tours", "")
	w = do(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tours_http_requests_total")
	assert.Contains(t, w.Body.String(), "tours_store_query_duration_seconds")
}

// brokenStore panics on list and fails everything else.
type brokenStore struct{}

func (brokenStore) ListTours(context.Context) ([]db.Tour, error) { panic("nil map") }

func (brokenStore) GetTour(context.Context, int64) (db.Tour, error) {
	return db.Tour{}, errors.New("x")
}

func (brokenStore) CreateTour(context.Context, db.TourFields) error { return errors.New("x") }

func (brokenStore) UpdateTour(context.Context, int64, db.TourFields) error {
	return errors.New("x")
}

func (brokenStore) DeleteTour(context.Context, int64) error { return errors.New("x") }

func (brokenStore) PingContext(context.Context) error { return db.ErrUnavailable }

func TestPanicAndUnhealthy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := server.NewRouter(server.Options{
		Logger: zaptest.NewLogger(t),
		Store:  brokenStore{},
	})

	w := do(r, http.MethodGet, "/api/Tours", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Something broke!", w.Body.String())

	w = do(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func jsonNumber(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
