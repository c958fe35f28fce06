package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr        string
	DynamoEndpoint    string
	DynamoRegion      string
	DynamoTable       string
	DynamoCreateTable bool
	MetricsUser       string
	MetricsPassword   string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		ListenAddr:        getEnv("LISTEN_ADDR", ":8080"),
		DynamoEndpoint:    os.Getenv("DYNAMO_ENDPOINT"),
		DynamoRegion:      getEnv("DYNAMO_REGION", "us-east-1"),
		DynamoTable:       getEnv("DYNAMO_TABLE", "StockAlertRules"),
		DynamoCreateTable: os.Getenv("DYNAMO_CREATE_TABLE") == "true",
		MetricsUser:       os.Getenv("METRICS_USER"),
		MetricsPassword:   os.Getenv("METRICS_PASSWORD"),
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
