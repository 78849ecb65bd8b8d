package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string
	// AutoMigrate runs schema migration on start; meant for local setups.
	AutoMigrate bool

	// RedisAddr empty disables request idempotency.
	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	WorkflowBasePath string
	AppBaseURL       string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	ResendAPIKey string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	// DefaultFromAddress is used when the email settings row has no sender.
	DefaultFromAddress string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the process environment. A .env file in the working directory,
// when present, fills in variables that are not already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:  getenv("APP_PORT", "8080"),
		AppEnv:   getenv("APP_ENV", "production"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "quotes"),
		MySQLUser: getenv("MYSQL_USER", "quotes"),
		MySQLPass: getenv("MYSQL_PASS", "quotes"),

		AutoMigrate: os.Getenv("DB_AUTO_MIGRATE") == "true",

		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		WorkflowBasePath: "/" + strings.Trim(getenv("WORKFLOW_BASE_PATH", "/functions/v1/quote-workflow"), "/"),
		AppBaseURL:       strings.TrimRight(os.Getenv("APP_BASE_URL"), "/"),

		JWTSecret:   os.Getenv("AUTH_JWT_SECRET"),
		JWTIssuer:   os.Getenv("AUTH_JWT_ISSUER"),
		JWTAudience: getenv("AUTH_JWT_AUDIENCE", "authenticated"),

		ResendAPIKey:       os.Getenv("RESEND_API_KEY"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           getint("SMTP_PORT", 587),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPass:           os.Getenv("SMTP_PASS"),
		DefaultFromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing AUTH_JWT_SECRET")
	}
	return nil
}

func (c *Config) IsDevelopment() bool { return c.AppEnv == "development" }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME columns; clientFoundRows makes RowsAffected
	// count matched rows, which the conditional quote writes rely on
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&clientFoundRows=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
