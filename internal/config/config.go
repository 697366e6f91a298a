package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/xqrs/properlist/internal/logger"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "PROPERLIST"

// Config holds all configuration for the demo.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Demo holds configuration for the generated list.
	Demo Demo `mapstructure:"demo"`
}

// Demo configures the demo list.
type Demo struct {
	// ItemCount is the number of text items.
	ItemCount int `mapstructure:"item_count" default:"100"`
	// SectionEvery inserts a sticky section header before every n-th text
	// item. Zero disables headers.
	SectionEvery int `mapstructure:"section_every" default:"10"`
	// RefreshDelay postpones the first refresh.
	RefreshDelay time.Duration `mapstructure:"refresh_delay" default:"500ms"`
	// Fade cross-fades sticky headers instead of pushing them.
	Fade bool `mapstructure:"fade" default:"false"`
	// ScrollBar shows a scroll bar.
	ScrollBar bool `mapstructure:"scroll_bar" default:"true"`
	// Gap is the number of blank rows between items.
	Gap int `mapstructure:"gap" default:"0"`
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"json", "console"}
)

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." || path == "" {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist
	_ = godotenv.Load(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. PROPERLIST_LOG_LEVEL -> log.level)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &config, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(validLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q: want one of %s", c.Log.Level, strings.Join(validLevels, ", ")))
	}
	if !slices.Contains(validFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format %q: want one of %s", c.Log.Format, strings.Join(validFormats, ", ")))
	}
	if c.Demo.ItemCount < 0 {
		errs = append(errs, fmt.Errorf("demo.item_count %d: must not be negative", c.Demo.ItemCount))
	}
	if c.Demo.SectionEvery < 0 {
		errs = append(errs, fmt.Errorf("demo.section_every %d: must not be negative", c.Demo.SectionEvery))
	}
	if c.Demo.RefreshDelay < 0 {
		errs = append(errs, fmt.Errorf("demo.refresh_delay %s: must not be negative", c.Demo.RefreshDelay))
	}
	if c.Demo.Gap < 0 {
		errs = append(errs, fmt.Errorf("demo.gap %d: must not be negative", c.Demo.Gap))
	}
	return errors.Join(errs...)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
