package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBSSLMode is the lib/pq sslmode (disable, require, verify-ca, verify-full).
	DBSSLMode string
	// DBSSLRootCert, DBSSLCert, DBSSLKey are optional TLS material for the
	// database connection. Only added to the DSN when set.
	DBSSLRootCert string
	DBSSLCert     string
	DBSSLKey      string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// JWTSecret signs session tokens. Mandatory: Load fails when unset.
	JWTSecret string

	// UploadDir is where compared files are stored and served from.
	UploadDir string

	// BackupEnabled starts the periodic pg_dump job when true.
	BackupEnabled bool
	// BackupDir receives timestamped SQL dumps.
	BackupDir string
	// BackupIntervalHours is the time between dumps (default 24). Set via BACKUP_INTERVAL_HOURS.
	BackupIntervalHours int
	// PgDumpPath is the path to the pg_dump executable (e.g. "pg_dump" for Linux/Mac, or full Windows path).
	PgDumpPath string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the API listens with plain HTTP.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is a list of origins allowed for CORS (e.g. https://app.example.com, http://localhost:3000).
	// Set via CORS_ALLOWED_ORIGINS (comma-separated). When empty, no CORS headers are sent (same-origin only).
	CORSAllowedOrigins []string
}

// ErrMissingJWTSecret is returned when JWT_SECRET is unset. The process must
// refuse to start rather than sign session tokens with a known default.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set in the environment")

func Load() (Config, error) {
	cfg := Config{
		Port: getEnv("PORT", "8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "filecompare"),
		DBUser: getEnv("DB_USER", "filecompare"),
		DBPass: getEnv("DB_PASS", ""),

		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBSSLRootCert: getEnv("DB_SSL_ROOT_CERT", ""),
		DBSSLCert:     getEnv("DB_SSL_CERT", ""),
		DBSSLKey:      getEnv("DB_SSL_KEY", ""),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		JWTSecret: os.Getenv("JWT_SECRET"),

		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		BackupEnabled:       getEnvBool("BACKUP_ENABLED", false),
		BackupDir:           getEnv("BACKUP_DIR", "backups"),
		BackupIntervalHours: getEnvInt("BACKUP_INTERVAL_HOURS", 24),

		// Default "pg_dump" works on Linux/Mac when it is in PATH; set PG_DUMP_PATH otherwise.
		PgDumpPath: getEnv("PG_DUMP_PATH", "pg_dump"),

		// Optional TLS configuration for HTTPS.
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}
	return cfg, nil
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
