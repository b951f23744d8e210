// Package config はアプリケーション全体の設定を環境変数から読み込みます。
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the journal backend.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string

	// JWKSURL is the identity provider's published key set endpoint
	// (e.g. https://cognito-idp.<region>.amazonaws.com/<pool>/.well-known/jwks.json).
	JWKSURL string

	// DynamoTable is the name of the single table holding users,
	// collections and entries.
	DynamoTable string
	// DynamoEndpoint overrides the DynamoDB endpoint (local development).
	DynamoEndpoint string
	// AWSRegion is the region for the DynamoDB client.
	AWSRegion string

	// MongoURI and MongoDB locate the theme data store.
	MongoURI string
	MongoDB  string

	// ThemeCacheTTL bounds how long a sampled theme prompt may be served
	// from the Redis cache.
	ThemeCacheTTL time.Duration
}

// Load reads configuration from environment variables.
// A .env file is applied first if present, matching local development setups.
func Load() Config {
	// .envが無いのは本番環境では正常なので、エラーは無視します
	_ = godotenv.Load()

	return Config{
		Port:           envDefault("PORT", "8080"),
		JWKSURL:        os.Getenv("AUTH_JWKS_URL"),
		DynamoTable:    envDefault("DYNAMO_TABLE", "painted_porch"),
		DynamoEndpoint: os.Getenv("DYNAMO_ENDPOINT"),
		AWSRegion:      envDefault("AWS_REGION", "us-east-1"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        envDefault("MONGO_DB", "journal_entries"),
		ThemeCacheTTL:  5 * time.Minute,
	}
}

// envDefault returns the value of the environment variable or def if unset.
func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
