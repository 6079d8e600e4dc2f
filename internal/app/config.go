package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete client configuration, loadable from environment
// variables (STOREFRONT_ prefix), flags, or YAML config files.
type Config struct {
	BackendURL  string        `usage:"Storefront backend base URL (STOREFRONT_BACKEND_URL or BACKEND_URL)" flag:"backend-url"`
	HTTPTimeout time.Duration `default:"15s" usage:"Per-request timeout for backend calls" flag:"http-timeout"`
	StateDir    string        `default:"" usage:"Directory for the durable session mirror (default: user config dir)" flag:"state-dir"`
	RedisURL    string        `default:"" usage:"Mirror session state in Redis instead of local files" flag:"redis-url"`
	CatalogTTL  time.Duration `default:"15m" usage:"How long resolved catalog entries stay cached" flag:"catalog-ttl"`
	Shipping    ShippingConfig
}

// ShippingConfig is the static shipping policy, in whole rupees.
type ShippingConfig struct {
	FreeShippingThreshold int64 `default:"999" usage:"Subtotal at or above which shipping is free" flag:"free-shipping-threshold"`
	FlatShippingFee       int64 `default:"50"  usage:"Shipping fee charged below the threshold" flag:"flat-shipping-fee"`
}

// LoadConfig loads configuration from environment variables, flags, and YAML
// config files, and applies platform defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "STOREFRONT",
		Files:     []string{"config.yaml", configFilePath()},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.BackendURL == "" {
		return nil, errors.New("backend URL is required: set STOREFRONT_BACKEND_URL or BACKEND_URL")
	}

	return &cfg, nil
}

// applyPlatformDefaults fills gaps from conventional environment variables
// and per-user directories.
func (c *Config) applyPlatformDefaults() {
	if c.BackendURL == "" {
		if v := os.Getenv("BACKEND_URL"); v != "" {
			c.BackendURL = v
		}
	}
	if c.StateDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			c.StateDir = filepath.Join(dir, "storefront")
		} else {
			c.StateDir = ".storefront"
		}
	}
}

// configFilePath is the per-user config file location.
func configFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "storefront", "config.yaml")
}
