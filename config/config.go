package config

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	Timezone          string `mapstructure:"TIMEZONE"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AdminJWTSecret    string `mapstructure:"ADMIN_JWT_SECRET"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Scheduling. Backend is "asynq" (redis backed) or "local" (in-process cron).
	SchedulerBackend     string `mapstructure:"SCHEDULER_BACKEND"`
	RecurringBillCron    string `mapstructure:"RECURRING_BILL_CRON"`
	CheckoutBillCron     string `mapstructure:"CHECKOUT_BILL_CRON"`
	RoomReleaseCron      string `mapstructure:"ROOM_RELEASE_CRON"`
	MonthlyDeliveryCron  string `mapstructure:"MONTHLY_DELIVERY_CRON"`
	CheckoutDeliveryCron string `mapstructure:"CHECKOUT_DELIVERY_CRON"`

	// Outgoing mail.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	// Payment gateway.
	StripeKey           string `mapstructure:"STRIPE_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	PaymentCurrency     string `mapstructure:"PAYMENT_CURRENCY"`

	// Room image storage.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Invoice letterhead.
	PropertyName    string `mapstructure:"PROPERTY_NAME"`
	PropertyAddress string `mapstructure:"PROPERTY_ADDRESS"`
	PropertyPhone   string `mapstructure:"PROPERTY_PHONE"`
	PropertyEmail   string `mapstructure:"PROPERTY_EMAIL"`
}

var AppConfig Config

const (
	SchedulerAsynq = "asynq"
	SchedulerLocal = "local"
)

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "stayledger")
	viper.SetDefault("ADMIN_JWT_SECRET", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("SCHEDULER_BACKEND", SchedulerAsynq)
	viper.SetDefault("RECURRING_BILL_CRON", "0 3 * * *")
	viper.SetDefault("CHECKOUT_BILL_CRON", "0 18 * * *")
	viper.SetDefault("ROOM_RELEASE_CRON", "30 18 * * *")
	viper.SetDefault("MONTHLY_DELIVERY_CRON", "0 4 1 * *")
	viper.SetDefault("CHECKOUT_DELIVERY_CRON", "0 19 * * *")
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "billing@localhost")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	viper.SetDefault("PAYMENT_CURRENCY", "inr")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("PROPERTY_NAME", "StayLedger Residency")
	viper.SetDefault("PROPERTY_ADDRESS", "")
	viper.SetDefault("PROPERTY_PHONE", "")
	viper.SetDefault("PROPERTY_EMAIL", "")
}

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := AppConfig.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
}

// Validate checks the values that would otherwise only fail once the scheduler starts.
func (c Config) Validate() error {
	switch c.SchedulerBackend {
	case SchedulerAsynq, SchedulerLocal:
	default:
		return fmt.Errorf("unknown SCHEDULER_BACKEND %q", c.SchedulerBackend)
	}
	for name, spec := range c.CronSpecs() {
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("invalid cron spec for %s (%q): %w", name, spec, err)
		}
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// CronSpecs maps each scheduled trigger to its cron expression.
func (c Config) CronSpecs() map[string]string {
	return map[string]string{
		"RECURRING_BILL_CRON":    c.RecurringBillCron,
		"CHECKOUT_BILL_CRON":     c.CheckoutBillCron,
		"ROOM_RELEASE_CRON":      c.RoomReleaseCron,
		"MONTHLY_DELIVERY_CRON":  c.MonthlyDeliveryCron,
		"CHECKOUT_DELIVERY_CRON": c.CheckoutDeliveryCron,
	}
}

// Location returns the configured billing timezone, UTC when it cannot be loaded.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
