package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Configuration validation errors.
var (
	ErrMissingDatasetPath = errors.New("DATASET_PATH is required")
	ErrMissingRatesPath   = errors.New("RATES_PATH is required")
	ErrInvalidTopN        = errors.New("TOP_N must be between 0 and 20")
	ErrInvalidWorkers     = errors.New("WORKERS must be at least 1")
)

// DefaultCountries is the country selection applied when COUNTRIES is unset.
var DefaultCountries = []string{"Brazil", "England", "South Africa", "Canada", "Qatar", "Australia"}

// DefaultCuisines is the cuisine selection applied when CUISINES is unset.
var DefaultCuisines = []string{"Brazilian", "Italian", "Japanese", "Arabian"}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatasetPath string
	RatesPath   string

	Countries []string
	Cuisines  []string
	TopN      int

	Workers            int
	SkipInvalidRecords bool
	LogLevel           string

	CSVOutputPath     string
	ParquetOutputPath string
	SQLitePath        string

	ExportPostgres   bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	MaxRetries       int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DatasetPath: getEnv("DATASET_PATH", "./dataset/zomato.csv"),
		RatesPath:   getEnv("RATES_PATH", "./taxas_moedas.json"),

		Countries: getEnvList("COUNTRIES", DefaultCountries),
		Cuisines:  getEnvList("CUISINES", DefaultCuisines),
		TopN:      getEnvInt("TOP_N", 10),

		Workers:            getEnvInt("WORKERS", 1),
		SkipInvalidRecords: getEnvBool("SKIP_INVALID_RECORDS", false),
		LogLevel:           getEnv("LOG_LEVEL", "info"),

		CSVOutputPath:     getEnv("EXPORT_CSV_PATH", "./output/restaurantes_dados.csv"),
		ParquetOutputPath: getEnv("EXPORT_PARQUET_PATH", ""),
		SQLitePath:        getEnv("SQLITE_PATH", ""),

		ExportPostgres:   getEnvBool("EXPORT_POSTGRES", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "explorer"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "explorer123"),
		PostgresDB:       getEnv("POSTGRES_DB", "restaurants_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),
	}
}

// Validate checks the values that would otherwise fail late in the run.
func (c *Config) Validate() error {
	if c.DatasetPath == "" {
		return ErrMissingDatasetPath
	}
	if c.RatesPath == "" {
		return ErrMissingRatesPath
	}
	if c.TopN < 0 || c.TopN > 20 {
		return ErrInvalidTopN
	}
	if c.Workers < 1 {
		return ErrInvalidWorkers
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

// getEnvList splits a comma-separated value. "*" selects everything and is
// returned as an empty list.
func getEnvList(key string, fallback []string) []string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return append([]string(nil), fallback...)
	}
	if val == "*" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
