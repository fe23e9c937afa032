package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"shipment-sync/internal/core/proxy"

	"github.com/spf13/viper"
)

// Carrier modes accepted by SYNC_CARRIER_MODE.
const (
	CarrierModePassthrough = "passthrough"
	CarrierModeFixed       = "fixed"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// WebhookKey is the shared secret expected in the "key" query parameter.
	WebhookKey string `mapstructure:"WEBHOOK_KEY" required:"true"`
	// UpstreamTimeoutSeconds bounds every outbound call to BasitKargo and Shopify.
	UpstreamTimeoutSeconds int `mapstructure:"UPSTREAM_TIMEOUT_SECONDS" default:"30"`

	BasitKargo BasitKargoConfig `mapstructure:",squash"`
	Shopify    ShopifyConfig    `mapstructure:",squash"`
	Sync       SyncConfig       `mapstructure:",squash"`
	Backfill   BackfillConfig   `mapstructure:",squash"`
	Redis      RedisConfig      `mapstructure:",squash"`
	Proxy      ProxyConfig      `mapstructure:",squash"`
}

// BasitKargoConfig holds the credentials for the shipping provider API.
type BasitKargoConfig struct {
	// URL is the base URL of the BasitKargo REST API, without trailing slash.
	URL string `mapstructure:"BASITKARGO_URL" default:"https://basitkargo.com/api/v2"`
	// Token is the bearer token issued by BasitKargo.
	Token string `mapstructure:"BASITKARGO_TOKEN" required:"true"`
}

// ShopifyConfig holds the Admin API credentials for the store.
type ShopifyConfig struct {
	// Shop is the myshopify domain, e.g. "my-store.myshopify.com".
	Shop string `mapstructure:"SHOPIFY_SHOP" required:"true"`
	// AccessToken is the Admin API access token.
	AccessToken string `mapstructure:"SHOPIFY_ACCESS_TOKEN" required:"true"`
	// APIVersion is the Admin API version segment.
	APIVersion string `mapstructure:"SHOPIFY_API_VERSION" default:"2024-10"`
}

// SyncConfig tunes how shipment events are turned into fulfillments.
type SyncConfig struct {
	// ActionableStatuses is a comma separated list of shipment statuses that trigger a write.
	ActionableStatuses string `mapstructure:"SYNC_ACTIONABLE_STATUSES" default:"SHIPPED,READY_TO_SHIP"`
	// CarrierMode is either "passthrough" or "fixed".
	CarrierMode string `mapstructure:"SYNC_CARRIER_MODE" default:"passthrough"`
	// DefaultCarrier is used when no carrier is found, and always in fixed mode.
	DefaultCarrier string `mapstructure:"SYNC_DEFAULT_CARRIER" default:"Other"`
	// NotifyCustomer toggles the Shopify shipping confirmation email.
	NotifyCustomer bool `mapstructure:"SYNC_NOTIFY_CUSTOMER" default:"true"`
}

// BackfillConfig holds defaults for the batch backfill run.
type BackfillConfig struct {
	// Cron is a robfig/cron spec. Empty disables the scheduled run.
	Cron string `mapstructure:"BACKFILL_CRON"`
	// Timezone decides what "today" means.
	Timezone string `mapstructure:"BACKFILL_TIMEZONE" default:"Europe/Istanbul"`
	PageSize int    `mapstructure:"BACKFILL_PAGE_SIZE" default:"50"`
	MaxPages int    `mapstructure:"BACKFILL_MAX_PAGES" default:"20"`
	// Statuses is a comma separated status filter sent to BasitKargo.
	Statuses string `mapstructure:"BACKFILL_STATUSES" default:"SHIPPED"`
}

// RedisConfig configures the optional per-order lock.
type RedisConfig struct {
	// URL in the format redis://[:password@]host[:port][/database]. Empty disables locking.
	URL string `mapstructure:"REDIS_URL"`
	// LockTTLSeconds is how long an order lock survives a crashed holder.
	LockTTLSeconds int `mapstructure:"ORDER_LOCK_TTL_SECONDS" default:"30"`
}

// ProxyConfig holds the optional outbound proxy.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"PROXY_ENABLED"`
	Hostname string `mapstructure:"PROXY_HOSTNAME"`
	Port     int    `mapstructure:"PROXY_PORT"`
	Username string `mapstructure:"PROXY_USERNAME"`
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *AppConfig) validate() error {
	switch c.Sync.CarrierMode {
	case CarrierModePassthrough, CarrierModeFixed:
	default:
		return fmt.Errorf("invalid configuration: SYNC_CARRIER_MODE must be %q or %q, got %q",
			CarrierModePassthrough, CarrierModeFixed, c.Sync.CarrierMode)
	}
	if _, err := time.LoadLocation(c.Backfill.Timezone); err != nil {
		return fmt.Errorf("invalid configuration: BACKFILL_TIMEZONE: %w", err)
	}
	return nil
}

// UpstreamTimeout returns the outbound HTTP timeout.
func (c *AppConfig) UpstreamTimeout() time.Duration {
	if c.UpstreamTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

// ProxySettings converts the proxy section for the HTTP client.
func (c *AppConfig) ProxySettings() proxy.Settings {
	return proxy.Settings{
		Enabled:  c.Proxy.Enabled,
		Hostname: c.Proxy.Hostname,
		Port:     c.Proxy.Port,
		Username: c.Proxy.Username,
		Password: c.Proxy.Password,
	}
}

// Statuses returns the actionable shipment statuses, upper-cased.
func (s SyncConfig) Statuses() []string {
	return SplitList(s.ActionableStatuses)
}

// StatusList returns the backfill status filter, upper-cased.
func (b BackfillConfig) StatusList() []string {
	return SplitList(b.Statuses)
}

// Location returns the configured backfill timezone, falling back to UTC.
func (b BackfillConfig) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SplitList splits a comma separated list, trimming and upper-casing entries.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("bind env %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && isZero(val.Field(i)) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
