package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/errdispatch/logger"
)

// Dispatch configures the error-dispatch middleware.
type Dispatch struct {
	// RedispatchLimit bounds how many times a handler-returned error may
	// re-enter dispatch before the pipeline gives up with a plain 500.
	RedispatchLimit int `yaml:"redispatch_limit" mapstructure:"redispatch_limit"`
	// IncludeTrace controls whether the console-logging wrap emits the
	// captured stack trace. Feed it to handlers.WithLogging (or directly to
	// handlers.LogWrap) when building the registry.
	IncludeTrace bool `yaml:"include_trace" mapstructure:"include_trace"`
}

// Pipeline is the top-level configuration consumed by callers wiring the
// dispatcher into their HTTP pipeline.
type Pipeline struct {
	Dispatch Dispatch      `yaml:"dispatch" mapstructure:"dispatch"`
	Logging  logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills unset fields with safe defaults.
func (p *Pipeline) ApplyDefaults() {
	if p.Dispatch.RedispatchLimit == 0 {
		p.Dispatch.RedispatchLimit = 4
	}
	p.Logging.ApplyDefaults()
}

// Validate checks the configuration for values dispatch cannot work with.
func (p *Pipeline) Validate() error {
	if p.Dispatch.RedispatchLimit < 1 {
		return fmt.Errorf("dispatch.redispatch_limit must be positive (got: %d)", p.Dispatch.RedispatchLimit)
	}
	return p.Logging.Validate()
}

// Option customizes Load.
type Option func(*loadOptions)

type loadOptions struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit YAML config file path.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) { o.envFile = path }
}

// Load populates cfg for a service. The YAML file is the base layer, a .env
// file (when present) is loaded into the process environment, and
// environment variables prefixed with the upper-cased service name override
// both (e.g. GATEWAY_DISPATCH_REDISPATCH_LIMIT).
func Load(serviceName string, cfg any, opts ...Option) error {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return fmt.Errorf("config: loading env file %s: %w", o.envFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		// Best effort only; a broken optional .env is reported, not fatal.
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load .env: %v\n", err)
		}
	}

	v := viper.New()
	prefix := strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_"))
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: reading %s: %w", o.configFile, err)
		}
	}

	// AutomaticEnv only resolves keys viper already knows about, so with no
	// config file prefixed variables would be dropped. Bind them explicitly
	// so the environment always wins.
	bindEnvOverrides(v, prefix)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal for service %s: %w", serviceName, err)
	}
	return nil
}

// bindEnvOverrides sets every environment variable carrying the service
// prefix on v under each nested key it may map to, so env values override
// file values even for keys absent from the file.
func bindEnvOverrides(v *viper.Viper, prefix string) {
	for _, entry := range os.Environ() {
		pair := strings.SplitN(entry, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix+"_") {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(pair[0], prefix+"_"))
		for _, variant := range keyVariants(key) {
			v.Set(variant, pair[1])
		}
	}
}

// keyVariants expands an underscore-separated key into the nested forms it
// may take in the config tree, e.g. dispatch_redispatch_limit yields
// dispatch_redispatch_limit, dispatch.redispatch.limit, and
// dispatch.redispatch_limit.
func keyVariants(key string) []string {
	parts := strings.Split(key, "_")
	variants := []string{key, strings.Join(parts, ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return variants
}
