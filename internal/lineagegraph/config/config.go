// Package config loads the options accepted at engine.Open: the
// backend path, cache sizing, pool sizing, the serialization format,
// and the optional event/metrics wiring. Flags, env, and file all bind
// to the same mapstructure-tagged struct via viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/codec"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/engine"
)

func msToDuration(ms int64) time.Duration { return time.Duration(ms) * time.Millisecond }

// PoolOptions governs the optional pool wrapper in front of the async
// backend.
type PoolOptions struct {
	MaxConcurrent    int64 `json:"max-concurrent" mapstructure:"max-concurrent"`
	AcquireTimeoutMs int64 `json:"acquire-timeout-ms" mapstructure:"acquire-timeout-ms"`
	EnableMetrics    bool  `json:"enable-metrics" mapstructure:"enable-metrics"`
}

// ObservatoryOptions governs the optional event/metrics capabilities.
type ObservatoryOptions struct {
	Enabled       bool `json:"enabled" mapstructure:"enabled"`
	EnableMetrics bool `json:"enable-metrics" mapstructure:"enable-metrics"`
}

// Options carries every config input accepted at open.
type Options struct {
	Path                string             `json:"path" mapstructure:"path"`
	CacheSizeMB         int                `json:"cache-size-mb" mapstructure:"cache-size-mb"`
	SerializationFormat string             `json:"serialization-format" mapstructure:"serialization-format"`
	Pool                PoolOptions        `json:"pool" mapstructure:"pool"`
	Observatory         ObservatoryOptions `json:"observatory" mapstructure:"observatory"`
}

// NewOptions returns Options carrying the same defaults Complete would
// fill in, so a caller inspecting an unloaded Options sees sensible
// values.
func NewOptions() *Options {
	return &Options{
		Path:                "data/lineagegraph.db",
		CacheSizeMB:         64,
		SerializationFormat: "compact-binary",
		Pool: PoolOptions{
			MaxConcurrent:    32,
			AcquireTimeoutMs: 5000,
		},
	}
}

// AddFlags registers every option as a persistent flag.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Path, "storage.path", o.Path, "Filesystem path for the embedded backend file.")
	fs.IntVar(&o.CacheSizeMB, "storage.cache-size-mb", o.CacheSizeMB, "Cache budget in MB; node capacity is mb*1000, edge capacity is 5x that.")
	fs.StringVar(&o.SerializationFormat, "storage.serialization-format", o.SerializationFormat, "Wire format: 'compact-binary' or 'text'.")
	fs.Int64Var(&o.Pool.MaxConcurrent, "storage.pool.max-concurrent", o.Pool.MaxConcurrent, "Maximum concurrent storage operations when the pool wrapper is enabled.")
	fs.Int64Var(&o.Pool.AcquireTimeoutMs, "storage.pool.acquire-timeout-ms", o.Pool.AcquireTimeoutMs, "Pool semaphore acquire timeout in milliseconds.")
	fs.BoolVar(&o.Pool.EnableMetrics, "storage.pool.enable-metrics", o.Pool.EnableMetrics, "Pool counters flag; kept in the options only, the pool always keeps its counters.")
	fs.BoolVar(&o.Observatory.Enabled, "observatory.enabled", o.Observatory.Enabled, "Event publication flag; kept in the options only, no publisher is wired from it.")
	fs.BoolVar(&o.Observatory.EnableMetrics, "observatory.enable-metrics", o.Observatory.EnableMetrics, "Metrics recording flag; kept in the options only, no recorder is wired from it.")
}

// Validate reports every malformed option rather than failing on the
// first one.
func (o *Options) Validate() []error {
	var errs []error
	if o.Path == "" {
		errs = append(errs, fmt.Errorf("storage.path is required"))
	}
	if o.CacheSizeMB <= 0 {
		errs = append(errs, fmt.Errorf("storage.cache-size-mb must be positive"))
	}
	switch o.SerializationFormat {
	case "compact-binary", "text", "":
	default:
		errs = append(errs, fmt.Errorf("storage.serialization-format %q must be 'compact-binary' or 'text'", o.SerializationFormat))
	}
	if o.Pool.MaxConcurrent < 0 {
		errs = append(errs, fmt.Errorf("storage.pool.max-concurrent must not be negative"))
	}
	return errs
}

// LoadFromFile reads path (any format viper supports: yaml, json,
// toml) into a fresh Options seeded with defaults.
func LoadFromFile(path string) (*Options, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("lineagegraph: read config file %s: %w", path, err)
	}
	o := NewOptions()
	if err := v.Unmarshal(o); err != nil {
		return nil, fmt.Errorf("lineagegraph: unmarshal config file %s: %w", path, err)
	}
	return o, nil
}

// LoadFromEnv overlays environment variables (prefix-scoped, "_"
// separated, matching the mapstructure tags) onto a fresh Options.
func LoadFromEnv(prefix string) (*Options, error) {
	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"path", "cache-size-mb", "serialization-format",
		"pool.max-concurrent", "pool.acquire-timeout-ms", "pool.enable-metrics",
		"observatory.enabled", "observatory.enable-metrics",
	} {
		_ = v.BindEnv(key)
	}
	o := NewOptions()
	if err := v.Unmarshal(o); err != nil {
		return nil, fmt.Errorf("lineagegraph: unmarshal env config: %w", err)
	}
	return o, nil
}

func (o *Options) serializationFormat() codec.Format {
	if o.SerializationFormat == "text" {
		return codec.FormatText
	}
	return codec.FormatBinary
}

// ToOpenOptions translates the loaded Options into engine.OpenOptions,
// wiring the optional event/metrics capabilities the caller supplies
// (nil is acceptable; engine.Config.Complete falls back to no-ops).
// Observatory and Pool.EnableMetrics are not translated: events and
// metrics are wired only from the capabilities set on eng.
func (o *Options) ToOpenOptions(eng engine.Config) engine.OpenOptions {
	eng.CacheSizeMB = o.CacheSizeMB
	eng.MaxConcurrent = o.Pool.MaxConcurrent
	eng.AcquireTimeout = msToDuration(o.Pool.AcquireTimeoutMs)
	eng.EnablePool = o.Pool.MaxConcurrent > 0
	return engine.OpenOptions{
		Path:                o.Path,
		SerializationFormat: o.serializationFormat(),
		Engine:              eng,
	}
}
