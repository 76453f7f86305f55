package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	GuideFileName = "guide.xml"
	IndexFileName = "index.json"

	// EnvRedisURL and EnvOutputDir override their config file counterparts.
	EnvRedisURL  = "EPGFETCH_REDIS_URL"
	EnvOutputDir = "EPGFETCH_OUTPUT_DIR"

	defaultMinGuideSize        = 50000
	defaultFetchTimeoutSeconds = 15
	defaultSourceLabel         = "globetvapp/epg"
	defaultMergedFileName      = "merged.xml.gz"
	defaultOutputDir           = "./epg_db"
)

type SourceConfig struct {
	Name        string   `yaml:"name"`
	BaseURL     string   `yaml:"base_url"`
	ListingURL  string   `yaml:"listing_url"`
	FolderStyle string   `yaml:"folder_style"`
	Patterns    []string `yaml:"patterns"`
}

type FetcherConfig struct {
	Timeout      time.Duration
	MinGuideSize int64
}

type IndexerConfig struct {
	OutputDir     string
	MinGuideSize  int64
	SourceLabel   string
	GuideFileName string
	IndexFileName string
}

type MergerConfig struct {
	OutputDir      string
	GuideFileName  string
	MergedFileName string
}

type Config struct {
	LogLevel            string            `yaml:"log_level"`
	OutputDir           string            `yaml:"output_dir"`
	MinGuideSize        int64             `yaml:"min_guide_size"`
	FetchTimeoutSeconds int               `yaml:"fetch_timeout"`
	SourceLabel         string            `yaml:"source_label"`
	MergedFileName      string            `yaml:"merged_filename"`
	RedisURL            string            `yaml:"redis_url"`
	Countries           []string          `yaml:"countries"`
	Overrides           map[string]string `yaml:"overrides"`
	Sources             []SourceConfig    `yaml:"sources"`
}

func (c *Config) SetDefaults() {
	c.LogLevel = LogLevelInfo
	c.OutputDir = defaultOutputDir
	c.MinGuideSize = defaultMinGuideSize
	c.FetchTimeoutSeconds = defaultFetchTimeoutSeconds
	c.SourceLabel = defaultSourceLabel
	c.MergedFileName = defaultMergedFileName

	c.Countries = []string{
		"Australia", "Canada", "France", "Germany", "United Kingdom",
		"United States", "India", "Italy", "Spain", "Brazil",
	}

	c.Overrides = map[string]string{
		"United Kingdom": "Unitedkingdom",
		"United States":  "Usa",
	}

	c.Sources = []SourceConfig{
		{
			Name:        "globetvapp",
			BaseURL:     "https://raw.githubusercontent.com/globetvapp/epg/main",
			ListingURL:  "https://github.com/globetvapp/epg/tree/main",
			FolderStyle: "capitalized",
			Patterns: []string{
				"{slug_lower}1.xml",
				"{slug_lower}.xml",
				"{slug}.xml",
				"{slug_lower}.xml.gz",
			},
		},
	}
}

func (c *Config) FetcherConfig() *FetcherConfig {
	return &FetcherConfig{
		Timeout:      time.Duration(c.FetchTimeoutSeconds) * time.Second,
		MinGuideSize: c.MinGuideSize,
	}
}

func (c *Config) IndexerConfig() *IndexerConfig {
	return &IndexerConfig{
		OutputDir:     c.OutputDir,
		MinGuideSize:  c.MinGuideSize,
		SourceLabel:   c.SourceLabel,
		GuideFileName: GuideFileName,
		IndexFileName: IndexFileName,
	}
}

func (c *Config) MergerConfig() *MergerConfig {
	return &MergerConfig{
		OutputDir:      c.OutputDir,
		GuideFileName:  GuideFileName,
		MergedFileName: c.MergedFileName,
	}
}

// Load reads the config file if it exists, applies defaults first and
// environment overrides last. A missing file is not an error, the
// defaults describe a fully working setup.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.SetDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	if url := os.Getenv(EnvRedisURL); url != "" {
		cfg.RedisURL = url
	}
	if dir := os.Getenv(EnvOutputDir); dir != "" {
		cfg.OutputDir = dir
	}

	return cfg, nil
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}
