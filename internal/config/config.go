package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete pipeline configuration.
type Config struct {
	Source   SourceConfig   `yaml:"source" envconfig:"SOURCE"`
	Entities EntitiesConfig `yaml:"entities" envconfig:"ENTITIES"`
	Report   ReportConfig   `yaml:"report" envconfig:"REPORT"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// SourceConfig contains the upstream CSV endpoint configuration.
type SourceConfig struct {
	URL     string        `yaml:"url" envconfig:"URL" default:"https://catalog.ourworldindata.org/garden/covid/latest/compact/compact.csv" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"10s" validate:"gt=0"`
}

// EntitiesConfig contains the country filter applied by the cleaner.
type EntitiesConfig struct {
	Countries []string `yaml:"countries" envconfig:"COUNTRIES" default:"Ecuador,Argentina" validate:"min=1,dive,required"`
}

// ReportConfig contains the report artifact configuration.
type ReportConfig struct {
	OutputPath string `yaml:"output_path" envconfig:"OUTPUT_PATH" default:"reporte_covid.xlsx" validate:"required"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/epipulse.log"`
}

// Load loads configuration from environment variables (prefix EPI) layered
// over an optional YAML file. Environment values take precedence.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("EPI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Countries returns the configured entity filter as a set.
func (c *Config) Countries() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Entities.Countries))
	for _, country := range c.Entities.Countries {
		set[country] = struct{}{}
	}
	return set
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence).
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Source.URL == "" {
		envConfig.Source.URL = fileConfig.Source.URL
	}
	if envConfig.Source.Timeout == 0 {
		envConfig.Source.Timeout = fileConfig.Source.Timeout
	}
	if len(envConfig.Entities.Countries) == 0 {
		envConfig.Entities.Countries = fileConfig.Entities.Countries
	}
	if envConfig.Report.OutputPath == "" {
		envConfig.Report.OutputPath = fileConfig.Report.OutputPath
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	return envConfig
}

// getConfigFilePath returns the path to the config file, if one exists.
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns the default configuration: the OWID compact dataset, a
// 10 second fetch timeout and the Ecuador/Argentina country filter.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			URL:     "https://catalog.ourworldindata.org/garden/covid/latest/compact/compact.csv",
			Timeout: 10 * time.Second,
		},
		Entities: EntitiesConfig{
			Countries: []string{"Ecuador", "Argentina"},
		},
		Report: ReportConfig{
			OutputPath: "reporte_covid.xlsx",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "logs/epipulse.log",
		},
	}
}
