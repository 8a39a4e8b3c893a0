package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"jobpulse/internal/model"
)

type DatasetConfig struct {
	// CSVPath points at the raw job-postings export (optionally .gz).
	CSVPath string `yaml:"csvPath"`
	// SampleSize bounds the interactive row sample.
	SampleSize int `yaml:"sampleSize"`
	// Freq is "week" or "month".
	Freq string `yaml:"freq"`
}

type CacheConfig struct {
	Dir        string `yaml:"dir"`
	TTLMinutes int    `yaml:"ttlMinutes"`
}

type Config struct {
	Addr      string         `yaml:"addr"`
	SSLCert   string         `yaml:"sslCert"`
	SSLKey    string         `yaml:"sslKey"`
	Dataset   DatasetConfig  `yaml:"dataset"`
	DB        model.DBConfig `yaml:"db"`
	Cache     CacheConfig    `yaml:"cache"`
	NotesPath string         `yaml:"notesPath"`
}

func DefaultConfig() *Config {
	return &Config{
		Addr: "127.0.0.1:8081",
		Dataset: DatasetConfig{
			CSVPath:    "data/jobs.csv",
			SampleSize: 20000,
			Freq:       "week",
		},
		DB: model.DBConfig{
			Path: "data/visual.db",
		},
		Cache: CacheConfig{
			Dir:        "data/cache",
			TTLMinutes: 30,
		},
		NotesPath: "data/notes.csv",
	}
}

// LoadYAMLConfig loads config from filename in YAML format.
func LoadYAMLConfig(filename string, cfg interface{}) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("ReadFile: %v", err)
	}
	return yaml.Unmarshal(data, cfg)
}

// InitConfig builds the effective configuration: defaults, then the YAML
// file if present, then environment overrides (a .env file is honored when
// it exists).
func InitConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	conf := DefaultConfig()

	if _, err := os.Stat(configPath); err == nil {
		if err := LoadYAMLConfig(configPath, conf); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("JOBPULSE_ADDR"); v != "" {
		conf.Addr = v
	}
	if v := os.Getenv("JOBPULSE_CSV"); v != "" {
		conf.Dataset.CSVPath = v
	}
	if v := os.Getenv("JOBPULSE_DB"); v != "" {
		conf.DB.Path = v
	}
	if v := os.Getenv("JOBPULSE_NOTES"); v != "" {
		conf.NotesPath = v
	}

	return conf, nil
}
