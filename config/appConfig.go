package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

type PlingConfig struct {
	Server           string `yaml:"server"`
	ApiKey           string `yaml:"api_key"`
	Locale           string `yaml:"locale"`
	ChunkSize        int    `yaml:"chunk_size"`
	Workers          int    `yaml:"workers"`
	RequestRateLimit int    `yaml:"request_rate_limit"`
}

type AppConfig struct {
	Pling    PlingConfig    `yaml:"pling"`
	Postgres PostgresConfig `yaml:"postgres"`
}

const (
	DefaultChunkSize        = 100
	DefaultRequestRateLimit = 120 // requests per minute
)

// Validate checks the connection settings before any row is read.
func (c *PlingConfig) Validate() error {
	u, err := url.ParseRequestURI(c.Server)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid pling server URL: %q", c.Server)
	}
	if c.ApiKey == "" {
		return fmt.Errorf("pling API key is missing")
	}
	return nil
}

func (c *PlingConfig) ApplyDefaults() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.RequestRateLimit <= 0 {
		c.RequestRateLimit = DefaultRequestRateLimit
	}
}

func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := &AppConfig{}
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}
