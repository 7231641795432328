package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper). Constructed once at
// startup and injected into every component; no package-level globals.
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	JWTSecret           string
	JWTTTL              time.Duration
	StorageURL          string // e.g. https://xyz.supabase.co; used for signed upload URLs and public image URLs
	StorageSecretKey    string // service key for the storage API, not the anon key
	MailAPIKey          string // transactional email API key (Brevo); empty disables sending
	MailFrom            string
	FrontendURLEndsWith string
	DevPassword         string
	HealthAdminKey      string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	ttlMinutes := viper.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")
	if ttlMinutes <= 0 {
		ttlMinutes = 30
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		RedisURL:            viper.GetString("REDIS_URL"),
		JWTSecret:           viper.GetString("JWT_SECRET"),
		JWTTTL:              time.Duration(ttlMinutes) * time.Minute,
		StorageURL:          viper.GetString("STORAGE_URL"),
		StorageSecretKey:    viper.GetString("STORAGE_SECRET_KEY"),
		MailAPIKey:          viper.GetString("MAIL_API_KEY"),
		MailFrom:            viper.GetString("MAIL_FROM"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
	}, nil
}
