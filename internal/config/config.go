package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Token    TokenConfig
	Stripe   StripeConfig
	Payphone PayphoneConfig
	Mailer   MailerConfig
	Pixel    PixelConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds admin-auth JWT configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// TokenConfig holds purchase-token configuration
type TokenConfig struct {
	Secret     string
	TTLMinutes int
}

// StripeConfig holds card-processor configuration
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	MockAPI       bool
}

// PayphoneConfig holds the regional payment-link gateway configuration
type PayphoneConfig struct {
	BaseURL string
	Token   string
	StoreID string
	MockAPI bool
}

// MailerConfig holds the transactional email provider configuration
type MailerConfig struct {
	BaseURL     string
	APIKey      string
	FromAddress string
	MockMailer  bool
}

// PixelConfig holds the ad-conversion tracking configuration
type PixelConfig struct {
	PixelID     string
	AccessToken string
	MockAPI     bool
}

// Load loads configuration from environment variables and config files
func Load(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "raffle-platform")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Token.TTLMinutes", 15)
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Stripe.MockAPI", true)
	viper.SetDefault("Payphone.BaseURL", "https://pay.payphonetodoesposible.com/api")
	viper.SetDefault("Payphone.MockAPI", true)
	viper.SetDefault("Mailer.BaseURL", "https://api.resend.com")
	viper.SetDefault("Mailer.MockMailer", true)
	viper.SetDefault("Pixel.MockAPI", true)
}
