package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port string
	Env  string

	// Database selection: "dynamodb", "mongo" or "memory"
	DBType string

	// MongoDB settings (when DBType = "mongo")
	MongoURI string
	MongoDB  string

	// DynamoDB settings (when DBType = "dynamodb")
	AWSRegion          string
	DynamoDBEndpoint   string // Optional: for local development
	AWSAccessKeyID     string // Optional: for local development
	AWSSecretAccessKey string // Optional: for local development

	// Quoting parameters
	BasePremiumRate   decimal.Decimal // annual base rate before risk factors
	MaxVehicleAge     int
	MinDriverAge      int
	MaxDriverAge      int
	MinCoverage       decimal.Decimal
	MaxCoverage       decimal.Decimal
	QuoteValidityDays int

	// External risk assessment: "off" or "static"
	RiskAssessor string

	// Timeouts
	HTTPReadTimeoutSec     int
	HTTPWriteTimeoutSec    int
	HTTPIdleTimeoutSec     int
	HTTPRequestTimeoutSec  int
	MongoConnectTimeoutSec int
	MongoOpTimeoutMs       int

	// Retention worker settings
	WorkerIntervalSec  int
	QuoteRetentionDays int

	// Security settings
	APIKey         string
	AllowedOrigins []string
	RateLimitRPM   int
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	cfg := &Config{}

	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "dev")
	cfg.DBType = getEnv("DB_TYPE", "memory")

	// MongoDB settings (check both MONGODB_URI and MONGO_URI for compatibility)
	cfg.MongoURI = getEnv("MONGODB_URI", getEnv("MONGO_URI", ""))
	cfg.MongoDB = getEnv("MONGO_DB", "autoquote")

	// DynamoDB settings
	cfg.AWSRegion = getEnv("AWS_REGION", "us-east-1")
	cfg.DynamoDBEndpoint = getEnv("DYNAMODB_ENDPOINT", "") // Empty means use AWS
	cfg.AWSAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", "")
	cfg.AWSSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", "")

	var err error
	cfg.BasePremiumRate, err = getEnvAsDecimal("BASE_PREMIUM_RATE", "500.00")
	if err != nil {
		return nil, err
	}
	cfg.MinCoverage, err = getEnvAsDecimal("MIN_COVERAGE", "25000.00")
	if err != nil {
		return nil, err
	}
	cfg.MaxCoverage, err = getEnvAsDecimal("MAX_COVERAGE", "1000000.00")
	if err != nil {
		return nil, err
	}
	cfg.MaxVehicleAge = getEnvAsInt("MAX_VEHICLE_AGE_YEARS", 20)
	cfg.MinDriverAge = getEnvAsInt("MIN_DRIVER_AGE", 18)
	cfg.MaxDriverAge = getEnvAsInt("MAX_DRIVER_AGE", 85)
	cfg.QuoteValidityDays = getEnvAsInt("QUOTE_VALIDITY_DAYS", 30)
	cfg.RiskAssessor = getEnv("RISK_ASSESSOR", "off")

	cfg.HTTPReadTimeoutSec = getEnvAsInt("HTTP_READ_TIMEOUT_SEC", 10)
	cfg.HTTPWriteTimeoutSec = getEnvAsInt("HTTP_WRITE_TIMEOUT_SEC", 10)
	cfg.HTTPIdleTimeoutSec = getEnvAsInt("HTTP_IDLE_TIMEOUT_SEC", 120)
	cfg.HTTPRequestTimeoutSec = getEnvAsInt("HTTP_REQUEST_TIMEOUT_SEC", 30)
	cfg.MongoConnectTimeoutSec = getEnvAsInt("MONGO_CONNECT_TIMEOUT_SEC", 5)
	cfg.MongoOpTimeoutMs = getEnvAsInt("MONGO_OP_TIMEOUT_MS", 500)

	cfg.WorkerIntervalSec = getEnvAsInt("WORKER_INTERVAL_SEC", 3600)
	cfg.QuoteRetentionDays = getEnvAsInt("QUOTE_RETENTION_DAYS", 90)

	// Security settings
	cfg.APIKey = getEnv("API_KEY", "")
	cfg.AllowedOrigins = getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"})
	cfg.RateLimitRPM = getEnvAsInt("RATE_LIMIT_RPM", 100)

	if cfg.DBType == "mongo" && cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required when DB_TYPE=mongo")
	}
	if cfg.BasePremiumRate.Sign() <= 0 {
		return nil, fmt.Errorf("BASE_PREMIUM_RATE must be positive")
	}
	if cfg.QuoteValidityDays <= 0 {
		return nil, fmt.Errorf("QUOTE_VALIDITY_DAYS must be positive")
	}

	// In production, API_KEY must be explicitly set
	if cfg.Env == "prod" && cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is required in production environment")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = "demo-api-key-12345"
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if val, err := strconv.Atoi(valStr); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsDecimal(key, defaultVal string) (decimal.Decimal, error) {
	valStr := os.Getenv(key)
	if valStr == "" {
		valStr = defaultVal
	}
	val, err := decimal.NewFromString(valStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a decimal: %w", key, err)
	}
	return val, nil
}

func getEnvAsSlice(key string, defaultVal []string) []string {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	var result []string
	for _, s := range strings.Split(valStr, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	if len(result) == 0 {
		return defaultVal
	}
	return result
}
