package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	Database Database `yaml:"database"`
	Auth     Auth     `yaml:"auth"`
	Payment  Payment  `yaml:"payment"`
	Fees     Fees     `yaml:"fees"`
	Limits   Limits   `yaml:"limits"`
}

type HTTP struct {
	Port           string   `yaml:"port" env:"PORT" env-default:"8080"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-default:"*"`
}

type Database struct {
	// Driver is "postgres" or "sqlite". DSN is the connection string for
	// postgres, or the database file path for sqlite.
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	DSN    string `yaml:"dsn"    env:"DATABASE_URL"`
	Host   string `yaml:"host"     env:"DB_HOST" env-default:"localhost"`
	Port   string `yaml:"port"     env:"DB_PORT" env-default:"5432"`
	User   string `yaml:"user"     env:"DB_USER" env-default:"postgres"`
	Pass   string `yaml:"password" env:"DB_PASSWORD"`
	Name   string `yaml:"name"     env:"DB_NAME" env-default:"storefront"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL  int    `yaml:"token_ttl_hours" env:"TOKEN_TTL_HOURS" env-default:"72"`
}

type Payment struct {
	KeyID     string `yaml:"key_id"     env:"RAZORPAY_KEY_ID"`
	KeySecret string `yaml:"key_secret" env:"RAZORPAY_KEY_SECRET"`
	BaseURL   string `yaml:"base_url"   env:"RAZORPAY_BASE_URL" env-default:"https://api.razorpay.com"`
	Currency  string `yaml:"currency"   env:"PAYMENT_CURRENCY" env-default:"INR"`
}

// Fees holds the checkout pricing knobs. Shipping is keyed by shipping
// method name; orders whose subtotal reaches FreeAbove ship for nothing.
type Fees struct {
	TaxPercent         float64             `yaml:"tax_percent"             env:"TAX_PERCENT"             env-default:"18"`
	MarketplacePercent float64             `yaml:"marketplace_percent"     env:"MARKETPLACE_PERCENT"     env-default:"2"`
	Shipping           map[string]Shipping `yaml:"shipping"`
}

type Shipping struct {
	FlatFee   float64 `yaml:"flat_fee"`
	FreeAbove float64 `yaml:"free_above"`
}

type Limits struct {
	RequestsPerMinute int `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM" env-default:"120"`
}

// DefaultShipping is used when no shipping table is configured.
func DefaultShipping() map[string]Shipping {
	return map[string]Shipping{
		"standard": {FlatFee: 50, FreeAbove: 1000},
		"express":  {FlatFee: 100, FreeAbove: 2500},
	}
}

// Load reads configuration from the optional YAML file at path and the
// environment. Missing file is not an error; env vars alone are enough.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("reading env config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading env config: %w", err)
	}

	if len(cfg.Fees.Shipping) == 0 {
		cfg.Fees.Shipping = DefaultShipping()
	}
	return &cfg, nil
}

// PostgresDSN builds the DSN from the discrete DB_* variables when
// DATABASE_URL is not set.
func (d Database) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		d.Host, d.User, d.Pass, d.Name, d.Port,
	)
}
