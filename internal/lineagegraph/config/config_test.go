package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/codec"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/config"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/engine"
)

func TestNewOptions_CarriesSensibleDefaults(t *testing.T) {
	o := config.NewOptions()
	assert.Equal(t, "data/lineagegraph.db", o.Path)
	assert.Equal(t, 64, o.CacheSizeMB)
	assert.Equal(t, int64(32), o.Pool.MaxConcurrent)
	assert.Empty(t, o.Validate())
}

func TestValidate_ReportsEveryMalformedOption(t *testing.T) {
	o := config.NewOptions()
	o.Path = ""
	o.CacheSizeMB = 0
	o.SerializationFormat = "xml"
	o.Pool.MaxConcurrent = -1

	errs := o.Validate()
	assert.Len(t, errs, 4)
}

func TestLoadFromFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lineagegraph.yaml")
	contents := `
path: custom/data.db
cache-size-mb: 128
serialization-format: text
pool:
  max-concurrent: 16
  acquire-timeout-ms: 2000
observatory:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	o, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom/data.db", o.Path)
	assert.Equal(t, 128, o.CacheSizeMB)
	assert.Equal(t, "text", o.SerializationFormat)
	assert.Equal(t, int64(16), o.Pool.MaxConcurrent)
	assert.True(t, o.Observatory.Enabled)
}

func TestLoadFromFile_MissingFileErrors(t *testing.T) {
	_, err := config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestToOpenOptions_TranslatesPoolSettings(t *testing.T) {
	o := config.NewOptions()
	o.SerializationFormat = "text"
	o.Pool.MaxConcurrent = 8

	opts := o.ToOpenOptions(engine.Config{})
	assert.Equal(t, o.Path, opts.Path)
	assert.Equal(t, codec.FormatText, opts.SerializationFormat)
	assert.Equal(t, int64(8), opts.Engine.MaxConcurrent)
	assert.True(t, opts.Engine.EnablePool)
}
