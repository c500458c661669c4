package config

const (
	// EnvPrefix scopes every envconfig lookup.
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names shared with tests and deployment tooling.
const (
	EnvAppEnv   = "STOREFRONT_APP_ENV"
	EnvPort     = "STOREFRONT_APP_PORT"
	EnvRedisURL = "STOREFRONT_REDIS_URL"

	EnvPricingFreeShippingThreshold = "STOREFRONT_PRICING_FREE_SHIPPING_THRESHOLD"
	EnvPricingStandardShippingRate  = "STOREFRONT_PRICING_STANDARD_SHIPPING_RATE"
	EnvPricingTaxRate               = "STOREFRONT_PRICING_TAX_RATE"
	EnvPayNowSuccessRate            = "STOREFRONT_PAYNOW_SUCCESS_RATE"
	EnvSessionTTL                   = "STOREFRONT_SESSION_TTL"
)
