package cmd

import (
	"strings"
	"time"

	"fooddelivery/internal/adapters/out/payment/flutterwave"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string

	DBDriver     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSslMode    string
	DBSQLitePath string

	JWTSecret      string
	AllowedOrigins []string

	FlutterwaveSecretKey string
	FlutterwaveBaseURL   string
	PaymentCurrency      string
	PaymentTimeout       time.Duration
	FrontendURL          string

	RabbitMQURL      string
	RabbitMQExchange string

	LogJSON  bool
	LogLevel string
}

// LoadConfig reads the environment, after merging an optional .env file.
func LoadConfig() Config {
	// Missing .env is fine: deployments pass plain environment variables.
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_DRIVER", postgres.DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_SQLITE_PATH", ":memory:")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("FLW_BASE_URL", flutterwave.DefaultBaseURL)
	v.SetDefault("PAYMENT_CURRENCY", "NGN")
	v.SetDefault("PAYMENT_TIMEOUT", flutterwave.DefaultTimeout)
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("RABBITMQ_EXCHANGE", rabbitmq.DefaultExchange)
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	return Config{
		HTTPPort:             v.GetString("HTTP_PORT"),
		DBDriver:             v.GetString("DB_DRIVER"),
		DBHost:               v.GetString("DB_HOST"),
		DBPort:               v.GetString("DB_PORT"),
		DBUser:               v.GetString("DB_USER"),
		DBPassword:           v.GetString("DB_PASSWORD"),
		DBName:               v.GetString("DB_NAME"),
		DBSslMode:            v.GetString("DB_SSLMODE"),
		DBSQLitePath:         v.GetString("DB_SQLITE_PATH"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		AllowedOrigins:       splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		FlutterwaveSecretKey: v.GetString("FLW_SECRET_KEY"),
		FlutterwaveBaseURL:   v.GetString("FLW_BASE_URL"),
		PaymentCurrency:      v.GetString("PAYMENT_CURRENCY"),
		PaymentTimeout:       v.GetDuration("PAYMENT_TIMEOUT"),
		FrontendURL:          strings.TrimRight(v.GetString("FRONTEND_URL"), "/"),
		RabbitMQURL:          v.GetString("RABBITMQ_URL"),
		RabbitMQExchange:     v.GetString("RABBITMQ_EXCHANGE"),
		LogJSON:              v.GetBool("LOG_JSON"),
		LogLevel:             v.GetString("LOG_LEVEL"),
	}
}

func (c Config) Database() postgres.DatabaseConfig {
	return postgres.DatabaseConfig{
		Driver:     c.DBDriver,
		Host:       c.DBHost,
		Port:       c.DBPort,
		User:       c.DBUser,
		Password:   c.DBPassword,
		Name:       c.DBName,
		SslMode:    c.DBSslMode,
		SQLitePath: c.DBSQLitePath,
	}
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
