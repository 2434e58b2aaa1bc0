package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The types reflect how the values are used in the
// application: strings for identifiers and secrets, ints for durations and
// costs.
type Config struct {
	Env               string // application environment (e.g. "dev", "prod")
	Port              string // HTTP port to listen on
	DBUser            string // database username
	DBPass            string // database password (optional)
	DBHost            string // database host address
	DBPort            string // database port number
	DBName            string // database name
	JWTAccessSecret   string // secret used to sign access tokens
	JWTRefreshSecret  string // secret used to sign refresh tokens
	JWTIssuer         string // issuer embedded in every token
	JWTAudience       string // audience embedded in every token
	AccessTTLMin      int    // access token time-to-live in minutes
	RefreshTTLDays    int    // refresh token (and session) time-to-live in days
	BcryptCost        int    // bcrypt cost for password hashing
	R2Endpoint        string // object storage endpoint (Cloudflare R2 / S3 compatible)
	R2AccessKeyID     string // object storage access key id
	R2SecretAccessKey string // object storage secret access key
	R2Bucket          string // bucket for uploaded media and avatars
	R2PublicBaseURL   string // base URL uploaded files are served from
	MPBaseURL         string // MercadoPago API base URL (overridable in tests)
	MPAccessToken     string // MercadoPago access token
	AMQPURL           string // RabbitMQ connection URL (optional)
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values cause
// the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:               must("APP_ENV"),
		Port:              must("APP_PORT"),
		DBUser:            must("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"), // empty allowed
		DBHost:            must("DB_HOST"),
		DBPort:            must("DB_PORT"),
		DBName:            must("DB_NAME"),
		JWTAccessSecret:   must("JWT_ACCESS_SECRET"),
		JWTRefreshSecret:  must("JWT_REFRESH_SECRET"),
		JWTIssuer:         getenv("JWT_ISSUER", "player-api"),
		JWTAudience:       getenv("JWT_AUDIENCE", "player-client"),
		AccessTTLMin:      intDefault("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays:    intDefault("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:        intDefault("BCRYPT_COST", 12),
		R2Endpoint:        os.Getenv("R2_ENDPOINT"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2Bucket:          os.Getenv("R2_BUCKET"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		MPBaseURL:         getenv("MP_BASE_URL", "https://api.mercadopago.com"),
		MPAccessToken:     os.Getenv("MP_ACCESS_TOKEN"),
		AMQPURL:           os.Getenv("RABBITMQ_URL"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intDefault converts an optional environment variable into an integer,
// falling back to def when unset. A present but malformed value is fatal.
func intDefault(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
