package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	API struct {
		BaseURL        string  `yaml:"base_url" json:"base_url"`
		TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		RatePerSecond  float64 `yaml:"rate_per_second" json:"rate_per_second"`
		RateBurst      int     `yaml:"rate_burst" json:"rate_burst"`
		// Keyring account holding the bearer token for admin endpoints.
		TokenAccount string `yaml:"token_account" json:"token_account"`
	} `yaml:"api" json:"api"`

	Views struct {
		PageSize     int `yaml:"page_size" json:"page_size"`
		RelatedLimit int `yaml:"related_limit" json:"related_limit"`
	} `yaml:"views" json:"views"`

	Refresh struct {
		Enabled bool `yaml:"enabled" json:"enabled"`
		Seconds int  `yaml:"seconds" json:"seconds"`
	} `yaml:"refresh" json:"refresh"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
