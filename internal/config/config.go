package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/vtree/internal/errors"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "vtree.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "vtree.yaml"

	// DefaultMaxRows is the list size above which updates reload instead of
	// animating.
	DefaultMaxRows = 2000

	// DefaultPoolSize is the default recycle pool capacity.
	DefaultPoolSize = 64

	// DefaultInspectorAddr is the default inspector listen address.
	DefaultInspectorAddr = "localhost:7070"

	// DefaultHistory is the default number of passes the inspector keeps.
	DefaultHistory = 50

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "vtree"
)

// Config represents the complete vtree.json configuration.
type Config struct {
	// Diff contains list diffing settings.
	Diff DiffConfig `json:"diff" yaml:"diff"`

	// Recycle contains view recycling settings.
	Recycle RecycleConfig `json:"recycle" yaml:"recycle"`

	// Layout contains the bounds handed to the layout engine.
	Layout LayoutConfig `json:"layout" yaml:"layout"`

	// Log contains logging settings.
	Log LogConfig `json:"log" yaml:"log"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Inspector contains debug inspector settings.
	Inspector InspectorConfig `json:"inspector" yaml:"inspector"`

	// Archive contains snapshot archive settings.
	Archive ArchiveConfig `json:"archive" yaml:"archive"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// DiffConfig contains list diffing settings.
type DiffConfig struct {
	// MaxRows is the row count above which a list update falls back to a
	// full reload. 0 never falls back.
	MaxRows int `json:"maxRows" yaml:"maxRows"`
}

// RecycleConfig contains view recycling settings.
type RecycleConfig struct {
	// PoolSize is the number of unmounted views kept for reuse. 0 disables
	// recycling.
	PoolSize int `json:"poolSize" yaml:"poolSize"`
}

// LayoutConfig contains layout bounds in points.
type LayoutConfig struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level" yaml:"level"`

	// Format is text or json.
	Format string `json:"format" yaml:"format"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Namespace string `json:"namespace" yaml:"namespace"`
}

// InspectorConfig contains debug inspector settings.
type InspectorConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr" yaml:"addr"`

	// History is the number of recent passes kept for /passes.
	History int `json:"history" yaml:"history"`

	// Interval is how often the demo screen re-renders (e.g., "1s").
	Interval string `json:"interval" yaml:"interval"`
}

// ArchiveConfig contains snapshot archive settings. Set Dir for a local
// archive or Bucket for S3; leave both empty to disable archiving.
type ArchiveConfig struct {
	Dir      string `json:"dir,omitempty" yaml:"dir,omitempty"`
	Bucket   string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Diff:    DiffConfig{MaxRows: DefaultMaxRows},
		Recycle: RecycleConfig{PoolSize: DefaultPoolSize},
		Layout:  LayoutConfig{Width: 390, Height: 844},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{Namespace: DefaultNamespace},
		Inspector: InspectorConfig{
			Addr:     DefaultInspectorAddr,
			History:  DefaultHistory,
			Interval: "1s",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for vtree.json, then vtree.yaml, then vtree.yml.
func Load(dir string) (*Config, error) {
	for _, name := range candidates() {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E141").
		WithDetail("No vtree.json or vtree.yaml found in " + dir).
		WithSuggestion("Create vtree.json, or run without --config to use defaults")
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension.
func LoadFile(path string) (*Config, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No config file at " + path)
		}
		return nil, errors.New("E120").Wrap(err)
	}

	// Fields missing from the file keep the defaults from New, so an
	// explicit zero (e.g. "maxRows": 0) is preserved.
	cfg := New()
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid " + strings.ToUpper(format))
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, in the format
// its extension names.
func (c *Config) SaveTo(path string) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "yaml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		// Add newline at end of file
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Layout.Width == 0 {
		c.Layout.Width = 390
	}
	if c.Layout.Height == 0 {
		c.Layout.Height = 844
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Inspector.Addr == "" {
		c.Inspector.Addr = DefaultInspectorAddr
	}
	if c.Inspector.History == 0 {
		c.Inspector.History = DefaultHistory
	}
	if c.Inspector.Interval == "" {
		c.Inspector.Interval = "1s"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	invalid := func(detail string) error {
		return errors.New("E122").WithDetail(detail)
	}

	if c.Diff.MaxRows < 0 {
		return invalid("diff.maxRows must be 0 or greater")
	}
	if c.Recycle.PoolSize < 0 {
		return invalid("recycle.poolSize must be 0 or greater")
	}
	if c.Layout.Width <= 0 || c.Layout.Height <= 0 {
		return invalid("layout.width and layout.height must be positive")
	}
	if _, ok := levels[c.Log.Level]; !ok {
		return invalid("log.level must be debug, info, warn or error, got " + strconv.Quote(c.Log.Level))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("log.format must be text or json, got " + strconv.Quote(c.Log.Format))
	}
	if c.Inspector.History <= 0 {
		return invalid("inspector.history must be positive")
	}
	if d, err := time.ParseDuration(c.Inspector.Interval); err != nil || d <= 0 {
		return invalid("inspector.interval must be a positive duration, got " + strconv.Quote(c.Inspector.Interval))
	}
	if c.Archive.Dir != "" && c.Archive.Bucket != "" {
		return invalid("archive.dir and archive.bucket are mutually exclusive")
	}
	if c.Archive.Bucket != "" && c.Archive.Region == "" {
		return invalid("archive.region is required with archive.bucket")
	}
	return nil
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level returns the configured slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	if l, ok := levels[c.Log.Level]; ok {
		return l
	}
	return slog.LevelInfo
}

// Logger builds a logger writing to w in the configured format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// InspectorInterval returns the parsed demo render interval.
func (c *Config) InspectorInterval() time.Duration {
	d, err := time.ParseDuration(c.Inspector.Interval)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// ArchivePath returns the absolute path of the local archive directory,
// or "" when no local archive is configured.
func (c *Config) ArchivePath() string {
	if c.Archive.Dir == "" {
		return ""
	}
	if filepath.IsAbs(c.Archive.Dir) {
		return c.Archive.Dir
	}
	return filepath.Join(c.Dir(), c.Archive.Dir)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range candidates() {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No vtree.json or vtree.yaml found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

func candidates() []string {
	return []string{ConfigFileName, YAMLConfigFileName, "vtree.yml"}
}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", errors.New("E121").WithDetail(path)
	}
}
