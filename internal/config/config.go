package config

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// Config holds every runtime setting of the service. Values come from the
// environment (optionally seeded from a .env file by the caller).
type Config struct {
	Addr string
	Port int

	DBDriver          string
	DatabaseURL       string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBTLS             string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnectAttempts int
	DBConnectInterval time.Duration
	DBAutoMigrate     bool

	LogLevel         string
	TracingEnabled   bool
	ServiceName      string
	ShutdownTimeout  time.Duration
	CORSAllowOrigins []string
}

func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return Config{
		Addr: v.GetString("ADDR"),
		Port: v.GetInt("PORT"),

		DBDriver:          normalizeDriver(v.GetString("DB_DRIVER")),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBName:            v.GetString("DB_NAME"),
		DBUser:            v.GetString("DB_USER"),
		DBPassword:        v.GetString("DB_PASSWORD"),
		DBTLS:             v.GetString("DB_TLS"),
		DBMaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		DBConnectAttempts: v.GetInt("DB_CONNECT_ATTEMPTS"),
		DBConnectInterval: v.GetDuration("DB_CONNECT_INTERVAL"),
		DBAutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),

		LogLevel:         strings.ToLower(v.GetString("LOG_LEVEL")),
		TracingEnabled:   v.GetBool("TRACING_ENABLED"),
		ServiceName:      v.GetString("SERVICE_NAME"),
		ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
		CORSAllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 3000)

	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "db")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_NAME", "TravelBooking")
	v.SetDefault("DB_USER", "appuser")
	v.SetDefault("DB_PASSWORD", "apppass")
	v.SetDefault("DB_TLS", "false")
	v.SetDefault("DB_MAX_OPEN_CONNS", 50)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "2h")
	v.SetDefault("DB_CONNECT_ATTEMPTS", 30)
	v.SetDefault("DB_CONNECT_INTERVAL", "1s")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("SERVICE_NAME", "tours-api")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
}

// DSN returns the data source name for the configured driver.
// DATABASE_URL, when set, is returned untouched.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.DBDriver {
	case "pgx":
		return c.postgresDSN()
	case "sqlite3":
		return c.DBName
	default:
		return c.mysqlDSN()
	}
}

// ListenAddr returns ADDR if set, otherwise host joined with PORT.
func (c Config) ListenAddr(host string) string {
	if c.Addr != "" {
		return c.Addr
	}
	return host + ":" + strconv.Itoa(c.Port)
}

func (c Config) mysqlDSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.DBUser
	cfg.Passwd = c.DBPassword
	cfg.Net = "tcp"
	cfg.Addr = c.DBHost + ":" + c.DBPort
	cfg.DBName = c.DBName
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	// UPDATE must report matched rows, not changed rows, or an unchanged
	// update would look like a missing tour.
	cfg.ClientFoundRows = true
	if c.DBTLS != "" && c.DBTLS != "false" {
		cfg.TLSConfig = c.DBTLS
	}
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func (c Config) postgresDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}
	q := url.Values{}
	switch c.DBTLS {
	case "", "false":
		q.Set("sslmode", "disable")
	case "true":
		q.Set("sslmode", "verify-full")
	case "skip-verify":
		q.Set("sslmode", "require")
	default:
		q.Set("sslmode", c.DBTLS)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// normalizeDriver maps friendly names onto the registered database/sql driver names.
func normalizeDriver(s string) string {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "postgres", "postgresql":
		return "pgx"
	case "sqlite":
		return "sqlite3"
	default:
		return s
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
