package storefront

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	cartdomain "github.com/Apurer/choufli-storefront/internal/domains/cart/domain"
	checkoutdomain "github.com/Apurer/choufli-storefront/internal/domains/checkout/domain"
	promodomain "github.com/Apurer/choufli-storefront/internal/domains/promo/domain"
)

const (
	// ConfigEnv points at the YAML config when --config is not given.
	ConfigEnv = "STOREFRONT_CONFIG"
	// DataDirEnv overrides data_dir.
	DataDirEnv = "STOREFRONT_DATA_DIR"
	// OriginEnv overrides origin.
	OriginEnv = "STOREFRONT_ORIGIN"

	defaultEndpointURL = "http://localhost:8000/api/orders"
	defaultOrigin      = "http://localhost:8000"
	defaultProduct     = "Chemise Choufli"
	defaultProductCost = 125
)

// Duration wraps time.Duration to support YAML unmarshalling.
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses human readable duration strings.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		return nil
	}
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be string")
	}
	raw := value.Value
	if raw == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

// Config captures the storefront settings.
type Config struct {
	DataDir     string           `yaml:"data_dir"`
	Origin      string           `yaml:"origin"`
	ShippingFee *int64           `yaml:"shipping_fee"`
	Catalog     []Product        `yaml:"catalog"`
	Promo       PromoConfig      `yaml:"promo"`
	Endpoints   []EndpointConfig `yaml:"endpoints"`
}

// Product is a catalog entry.
type Product struct {
	Name  string `yaml:"name"`
	Price int64  `yaml:"price"`
}

// PromoConfig names the promoted product and its code.
type PromoConfig struct {
	Code            string `yaml:"code"`
	DiscountPercent *int64 `yaml:"discount_percent"`
	Product         string `yaml:"product"`
}

// EndpointConfig is one order destination.
type EndpointConfig struct {
	Name         string   `yaml:"name"`
	URL          string   `yaml:"url"`
	Mode         string   `yaml:"mode"`
	AcceptOpaque bool     `yaml:"accept_opaque"`
	Timeout      Duration `yaml:"timeout"`
}

// Load reads the YAML file at path, or only the defaults when path is empty,
// then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Config{}
	if path = strings.TrimSpace(path); path != "" {
		file, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		dec := yaml.NewDecoder(file)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("decode config: %w", err)
		}
	}
	applyEnv(&cfg)
	applyDefaults(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(DataDirEnv)); v != "" {
		cfg.DataDir = v
	}
	if v, ok := os.LookupEnv(OriginEnv); ok {
		cfg.Origin = strings.TrimSpace(v)
	} else if cfg.Origin == "" {
		cfg.Origin = defaultOrigin
	}
}

func applyDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.ShippingFee == nil {
		fee := cartdomain.DefaultShippingFee
		cfg.ShippingFee = &fee
	}
	if len(cfg.Catalog) == 0 {
		cfg.Catalog = []Product{{Name: defaultProduct, Price: defaultProductCost}}
	}
	if cfg.Promo.Code == "" {
		cfg.Promo.Code = promodomain.DefaultCode
	}
	if cfg.Promo.DiscountPercent == nil {
		percent := int64(promodomain.DefaultDiscountPercent)
		cfg.Promo.DiscountPercent = &percent
	}
	if cfg.Promo.Product == "" {
		cfg.Promo.Product = cfg.Catalog[0].Name
	}
	if len(cfg.Endpoints) == 0 {
		cfg.Endpoints = []EndpointConfig{{Name: "intake", URL: defaultEndpointURL, Mode: string(checkoutdomain.ModeStrict)}}
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".choufli"
	}
	return filepath.Join(home, ".choufli")
}

func validate(cfg Config) error {
	if *cfg.ShippingFee < 0 {
		return fmt.Errorf("shipping_fee must not be negative")
	}
	seen := make(map[string]struct{}, len(cfg.Catalog))
	for _, p := range cfg.Catalog {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("catalog entries need a name")
		}
		if p.Price < 0 {
			return fmt.Errorf("catalog price for %q must not be negative", name)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("catalog lists %q twice", name)
		}
		seen[key] = struct{}{}
	}
	if _, ok := cfg.Product(cfg.Promo.Product); !ok {
		return fmt.Errorf("promo product %q is not in the catalog", cfg.Promo.Product)
	}
	if _, err := cfg.Offer(); err != nil {
		return fmt.Errorf("promo: %w", err)
	}
	if _, err := cfg.CheckoutEndpoints(); err != nil {
		return err
	}
	return nil
}

// Product looks a catalog entry up by name, case-insensitively.
func (c Config) Product(name string) (Product, bool) {
	name = strings.TrimSpace(name)
	for _, p := range c.Catalog {
		if strings.EqualFold(strings.TrimSpace(p.Name), name) {
			return p, true
		}
	}
	return Product{}, false
}

// Offer builds the promo offer from the promoted product's catalog price.
func (c Config) Offer() (promodomain.Offer, error) {
	product, _ := c.Product(c.Promo.Product)
	percent := int64(promodomain.DefaultDiscountPercent)
	if c.Promo.DiscountPercent != nil {
		percent = *c.Promo.DiscountPercent
	}
	return promodomain.NewOffer(c.Promo.Code, percent, product.Price)
}

// CheckoutEndpoints converts the endpoint list for the checkout service.
func (c Config) CheckoutEndpoints() ([]checkoutdomain.Endpoint, error) {
	out := make([]checkoutdomain.Endpoint, 0, len(c.Endpoints))
	for i, raw := range c.Endpoints {
		mode, err := checkoutdomain.ParseMode(raw.Mode)
		if err != nil {
			return nil, fmt.Errorf("endpoints[%d]: %w", i, err)
		}
		ep := checkoutdomain.Endpoint{
			Name:         strings.TrimSpace(raw.Name),
			URL:          strings.TrimSpace(raw.URL),
			Mode:         mode,
			AcceptOpaque: raw.AcceptOpaque,
			Timeout:      raw.Timeout.Duration,
		}
		if err := ep.Validate(); err != nil {
			return nil, fmt.Errorf("endpoints[%d]: %w", i, err)
		}
		out = append(out, ep)
	}
	return out, nil
}

// Fee is the configured shipping fee.
func (c Config) Fee() int64 {
	if c.ShippingFee == nil {
		return cartdomain.DefaultShippingFee
	}
	return *c.ShippingFee
}
