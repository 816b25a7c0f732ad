package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                 string
	Environment          string
	LogLevel             string
	SupabaseURL          string
	SupabaseAnonKey      string
	SupabaseJWKSURL      string
	SupabaseJWTSecret    string
	ImagesBucket         string
	StorageProvider      string
	CloudinaryCloudName  string
	CloudinaryAPIKey     string
	CloudinaryAPISecret  string
	S3Bucket             string
	S3Region             string
	S3Endpoint           string
	S3AccessKey          string
	S3SecretKey          string
	S3PublicBaseURL      string
	MongoDBURI           string
	MongoDBPassword      string
	CORSOrigins          []string
	ListingRemoteTimeout time.Duration
	SupabaseReadTimeout  time.Duration
	MaxUploadBytes       int64
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                getEnvWithDefault("PORT", "8080"),
		Environment:         getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:            os.Getenv("LOG_LEVEL"),
		SupabaseURL:         strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseAnonKey:     os.Getenv("SUPABASE_URL_ANON_KEY"),
		SupabaseJWKSURL:     os.Getenv("SUPABASE_JWKS_URL"),
		SupabaseJWTSecret:   os.Getenv("SUPABASE_JWT_SECRET"),
		ImagesBucket:        getEnvWithDefault("PLACE_IMAGES_BUCKET", "place-images"),
		StorageProvider:     strings.ToLower(getEnvWithDefault("STORAGE_PROVIDER", "supabase")),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		S3Bucket:            os.Getenv("S3_BUCKET"),
		S3Region:            getEnvWithDefault("S3_REGION", "us-east-1"),
		S3Endpoint:          os.Getenv("S3_ENDPOINT"),
		S3AccessKey:         os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:         os.Getenv("S3_SECRET_KEY"),
		S3PublicBaseURL:     os.Getenv("S3_PUBLIC_BASE_URL"),
		MongoDBURI:          os.Getenv("MONGODB_URI"),
		MongoDBPassword:     os.Getenv("MONGODB_PASSWORD"),
		CORSOrigins:         splitList(getEnvWithDefault("CORS_ORIGINS", "http://localhost:3000")),
	}

	timeout, err := time.ParseDuration(getEnvWithDefault("LISTING_REMOTE_TIMEOUT", "3s"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("LISTING_REMOTE_TIMEOUT must be a positive duration")
	}
	cfg.ListingRemoteTimeout = timeout

	readTimeout, err := time.ParseDuration(getEnvWithDefault("SUPABASE_READ_TIMEOUT", "10s"))
	if err != nil || readTimeout <= 0 {
		return nil, fmt.Errorf("SUPABASE_READ_TIMEOUT must be a positive duration")
	}
	cfg.SupabaseReadTimeout = readTimeout

	maxMB, err := strconv.Atoi(getEnvWithDefault("MAX_UPLOAD_MB", "5"))
	if err != nil || maxMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be a positive integer")
	}
	cfg.MaxUploadBytes = int64(maxMB) << 20

	// Validate required fields
	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.SupabaseAnonKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL_ANON_KEY is required")
	}
	if cfg.SupabaseJWKSURL == "" {
		cfg.SupabaseJWKSURL = cfg.SupabaseURL + "/auth/v1/.well-known/jwks.json"
	}

	switch cfg.StorageProvider {
	case "supabase":
	case "cloudinary":
		if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
			return nil, fmt.Errorf("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required for cloudinary storage")
		}
	case "s3":
		if cfg.S3Bucket == "" || cfg.S3PublicBaseURL == "" {
			return nil, fmt.Errorf("S3_BUCKET and S3_PUBLIC_BASE_URL are required for s3 storage")
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_PROVIDER: %s (expected supabase, cloudinary, s3)", cfg.StorageProvider)
	}

	if cfg.MongoDBURI != "" && strings.Contains(cfg.MongoDBURI, "<password>") && cfg.MongoDBPassword == "" {
		return nil, fmt.Errorf("MONGODB_PASSWORD is required when MONGODB_URI has a <password> placeholder")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) SavedPlacesEnabled() bool {
	return c.MongoDBURI != ""
}
