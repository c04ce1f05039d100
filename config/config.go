package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"natal-chart/internal/domain"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Port                 string        `mapstructure:"port"`
	Variant              domain.Mode   `mapstructure:"variant"`                // framed or transparent
	DefaultWidth         int           `mapstructure:"default_width"`          // 0 picks the variant default
	DefaultBackground    string        `mapstructure:"default_background"`     // framed pattern image href
	StaticDir            string        `mapstructure:"static_dir"`             // served under /static
	TemplatesDir         string        `mapstructure:"templates_dir"`          // holds index.html
	BackgroundsFile      string        `mapstructure:"backgrounds_file"`       // catalog JSON
	BackgroundsURLPrefix string        `mapstructure:"backgrounds_url_prefix"` // href prefix for catalog images
	CatalogTTL           time.Duration `mapstructure:"catalog_ttl"`
	ChartServiceURL      string        `mapstructure:"chart_service_url"` // empty uses the built-in wheel renderer
	ChartServiceToken    string        `mapstructure:"chart_service_token"`
	ChartServiceTimeout  time.Duration `mapstructure:"chart_service_timeout"`
	ChartRatePerMinute   int           `mapstructure:"chart_rate_per_minute"`
	ChartRateBurst       int           `mapstructure:"chart_rate_burst"`
	LogLevel             string        `mapstructure:"log_level"`
}

// Variant default widths.
const (
	FramedWidth      = 600
	TransparentWidth = 300
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5000")
	v.SetDefault("variant", string(domain.ModeFramed))
	v.SetDefault("default_width", 0)
	v.SetDefault("default_background", "/static/images/template-1.png")
	v.SetDefault("static_dir", "static")
	v.SetDefault("templates_dir", "templates")
	v.SetDefault("backgrounds_file", "static/images/backgrounds/backgrounds.json")
	v.SetDefault("backgrounds_url_prefix", "/static/images/backgrounds")
	v.SetDefault("catalog_ttl", time.Minute)
	v.SetDefault("chart_service_url", "")
	v.SetDefault("chart_service_token", "")
	v.SetDefault("chart_service_timeout", 15*time.Second)
	v.SetDefault("chart_rate_per_minute", 30)
	v.SetDefault("chart_rate_burst", 5)
	v.SetDefault("log_level", "info")
}

// Load reads configuration from an optional .env file, an optional YAML file
// and environment variables, in increasing order of precedence.
func Load(cfgFile string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Secrets may be mounted as files.
	if token, ok := readSecretFile("CHART_SERVICE_TOKEN"); ok {
		cfg.ChartServiceToken = token
	}

	cfg.Variant = domain.Mode(strings.ToLower(string(cfg.Variant)))
	if cfg.DefaultWidth == 0 {
		cfg.DefaultWidth = cfg.VariantWidth()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// VariantWidth returns the render width used when neither the request nor
// DEFAULT_WIDTH sets one.
func (c *Config) VariantWidth() int {
	if c.Variant == domain.ModeTransparent {
		return TransparentWidth
	}
	return FramedWidth
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT cannot be empty"))
	}
	if !c.Variant.Valid() {
		errs = append(errs, fmt.Errorf("VARIANT must be %q or %q, got %q", domain.ModeFramed, domain.ModeTransparent, c.Variant))
	}
	if c.DefaultWidth <= 0 || c.DefaultWidth > 4096 {
		errs = append(errs, fmt.Errorf("DEFAULT_WIDTH must be in (0, 4096], got %d", c.DefaultWidth))
	}
	if c.CatalogTTL <= 0 {
		errs = append(errs, errors.New("CATALOG_TTL must be positive"))
	}
	if c.ChartServiceTimeout <= 0 {
		errs = append(errs, errors.New("CHART_SERVICE_TIMEOUT must be positive"))
	}
	if c.ChartServiceURL != "" {
		if u, err := url.Parse(c.ChartServiceURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("CHART_SERVICE_URL must be an absolute URL, got %q", c.ChartServiceURL))
		}
	}
	if c.ChartRatePerMinute <= 0 {
		errs = append(errs, errors.New("CHART_RATE_PER_MINUTE must be positive"))
	}
	if c.ChartRateBurst <= 0 {
		errs = append(errs, errors.New("CHART_RATE_BURST must be positive"))
	}

	return errors.Join(errs...)
}

// readSecretFile returns the trimmed content of the file named by key_FILE.
func readSecretFile(key string) (string, bool) {
	path := os.Getenv(key + "_FILE")
	if path == "" {
		return "", false
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(content)), true
}
