package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopora/shopora/internal/types"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Configuration struct {
	Server   ServerConfig   `validate:"required"`
	Logging  LoggingConfig  `validate:"required"`
	Cache    CacheConfig    `validate:"required"`
	Checkout CheckoutConfig `validate:"required"`
	Shipping ShippingConfig
}

type ServerConfig struct {
	Address string `validate:"required"`
	// SeedDemo preloads a demo catalog at startup
	SeedDemo bool
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type CacheConfig struct {
	Enabled bool
}

// CheckoutConfig carries the tunables of the checkout calculator
type CheckoutConfig struct {
	// PointsConversionRate is the currency value of one loyalty point
	PointsConversionRate int64 `validate:"required,gt=0"`
}

// PointsRate returns the conversion rate as a decimal for pricing math
func (c CheckoutConfig) PointsRate() decimal.Decimal {
	return decimal.NewFromInt(c.PointsConversionRate)
}

// ShippingConfig configures the external shipping-fee lookup. When
// ServiceURL is empty the static in-process fee table is used instead.
type ShippingConfig struct {
	ServiceURL string
	Timeout    time.Duration
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	// Load .env for local development; missing file is fine
	_ = godotenv.Load()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shopora")

	v.SetEnvPrefix("SHOPORA")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.seeddemo", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("cache.enabled", true)
	// 1 point = 100 currency units
	v.SetDefault("checkout.pointsconversionrate", 100)
	v.SetDefault("shipping.timeout", "5s")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for tests and scripts
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Server:   ServerConfig{Address: ":8080"},
		Logging:  LoggingConfig{Level: types.LogLevelDebug},
		Cache:    CacheConfig{Enabled: false},
		Checkout: CheckoutConfig{PointsConversionRate: 100},
		Shipping: ShippingConfig{Timeout: 5 * time.Second},
	}
}
