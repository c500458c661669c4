package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Pricing  PricingConfig
	Payment  PaymentConfig
	Sessions SessionConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Payment.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PricingConfig carries the fixed storefront pricing policy. Values are
// strings parsed into decimals by the pricing engine so money never passes
// through float64.
type PricingConfig struct {
	FreeShippingThreshold string `envconfig:"STOREFRONT_PRICING_FREE_SHIPPING_THRESHOLD" default:"50"`
	StandardShippingRate  string `envconfig:"STOREFRONT_PRICING_STANDARD_SHIPPING_RATE" default:"9.99"`
	TaxRate               string `envconfig:"STOREFRONT_PRICING_TAX_RATE" default:"0.08"`
}

func (p PricingConfig) validate() error {
	for name, value := range map[string]string{
		"free shipping threshold": p.FreeShippingThreshold,
		"standard shipping rate":  p.StandardShippingRate,
		"tax rate":                p.TaxRate,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("pricing %s is required", name)
		}
	}
	return nil
}

// PaymentConfig holds the simulated payment knobs plus the static bank
// transfer instructions shown to buyers.
type PaymentConfig struct {
	PayNowSuccessRate float64 `envconfig:"STOREFRONT_PAYNOW_SUCCESS_RATE" default:"0.70"`
	BankName          string  `envconfig:"STOREFRONT_BANK_NAME" default:"Standard Chartered Bank Zimbabwe"`
	BankAccountName   string  `envconfig:"STOREFRONT_BANK_ACCOUNT_NAME" default:"MarketPlace (Pvt) Ltd"`
	BankAccountNumber string  `envconfig:"STOREFRONT_BANK_ACCOUNT_NUMBER" default:"1234567890"`
	BankBranchCode    string  `envconfig:"STOREFRONT_BANK_BRANCH_CODE" default:"12345"`
}

func (p PaymentConfig) validate() error {
	if p.PayNowSuccessRate < 0 || p.PayNowSuccessRate > 1 {
		return fmt.Errorf("paynow success rate must be within [0, 1], got %v", p.PayNowSuccessRate)
	}
	return nil
}

type SessionConfig struct {
	// TTL bounds how long abandoned carts and checkout sessions survive in
	// storage before expiring on their own.
	TTL time.Duration `envconfig:"STOREFRONT_SESSION_TTL" default:"168h"`
}
