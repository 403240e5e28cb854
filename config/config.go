package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	FacilityName string

	DBPath        string
	StoreBackend  string // "sqlite" or "redis"
	RedisAddr     string
	RedisPort     string
	RedisPassword string
	JWTSecret     string

	// Log configuration
	LogLevel      string
	LogFilename   string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	LogCompress   bool

	// Optional off-site backup upload
	BackupUploadEnabled bool
	OSSEndpoint         string
	OSSBucketName       string
	OSSAccessKeyID      string
	OSSAccessKeySecret  string
}

func (c *Config) RedisFullAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisAddr, c.RedisPort)
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		// Ignore error if .env file is not found
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return &Config{
		FacilityName: getEnv("FACILITY_NAME", "あおば給食管理"),

		DBPath:        getEnv("DB_PATH", "data/aoba.db"),
		StoreBackend:  getEnv("STORE_BACKEND", "sqlite"),
		RedisAddr:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),

		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		LogFilename:   getEnv("LOG_FILENAME", "logs/app.log"),
		LogMaxSize:    getEnvAsInt("LOG_MAX_SIZE", 100),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:     getEnvAsInt("LOG_MAX_AGE", 28),
		LogCompress:   getEnvAsBool("LOG_COMPRESS", true),

		BackupUploadEnabled: getEnvAsBool("BACKUP_UPLOAD_ENABLED", false),
		OSSEndpoint:         os.Getenv("OSS_ENDPOINT"),
		OSSBucketName:       os.Getenv("OSS_BUCKET_NAME"),
		OSSAccessKeyID:      os.Getenv("OSS_ACCESS_KEY_ID"),
		OSSAccessKeySecret:  os.Getenv("OSS_ACCESS_KEY_SECRET"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
