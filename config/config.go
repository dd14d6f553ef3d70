package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    string `mapstructure:"ALLOWED_ORIGINS"`

	// Platform time zone used for calendar-date decisions on bookings.
	TimeZone string `mapstructure:"TIME_ZONE"`

	// Review transaction tuning.
	ReviewTxnTimeout     time.Duration `mapstructure:"REVIEW_TXN_TIMEOUT"`
	ReviewTxnMaxAttempts int           `mapstructure:"REVIEW_TXN_MAX_ATTEMPTS"`
	ReviewTxnBaseBackoff time.Duration `mapstructure:"REVIEW_TXN_BASE_BACKOFF"`

	// Redis configuration.
	RedisAddr            string        `mapstructure:"REDIS_ADDR"`
	RedisPassword        string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int           `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int           `mapstructure:"REDIS_REMINDER_QUEUE_DB"`
	BookingCacheTTL      time.Duration `mapstructure:"BOOKING_CACHE_TTL"`

	// Firebase service account used for ID-token verification and FCM.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Gemini.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Stripe.
	StripeKey       string `mapstructure:"STRIPE_SECRET_KEY"`
	ContactFeePaisa int64  `mapstructure:"CONTACT_FEE_PAISA"`

	// Cloudinary.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Admin console.
	AdminUsername     string `mapstructure:"ADMIN_USERNAME"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`

	// Directory holding markdown blog posts.
	PostsDir string `mapstructure:"POSTS_DIR"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017/?replicaSet=rs0")
	viper.SetDefault("DATABASE_NAME", "apnakam")
	viper.SetDefault("TIME_ZONE", "Asia/Kolkata")
	viper.SetDefault("REVIEW_TXN_TIMEOUT", 10*time.Second)
	viper.SetDefault("REVIEW_TXN_MAX_ATTEMPTS", 5)
	viper.SetDefault("REVIEW_TXN_BASE_BACKOFF", 50*time.Millisecond)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	viper.SetDefault("BOOKING_CACHE_TTL", 2*time.Minute)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "config/firebase-service-account.json")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("CONTACT_FEE_PAISA", 4900)
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("POSTS_DIR", "posts")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location returns the platform time zone, falling back to IST when the
// configured name cannot be loaded.
func Location() *time.Location {
	loc, err := time.LoadLocation(AppConfig.TimeZone)
	if err != nil {
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}
