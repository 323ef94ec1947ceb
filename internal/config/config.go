package config

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// BlogConfig is the blog's presentation metadata, shown in headers and feeds.
type BlogConfig struct {
	Name     string
	Title    string
	Subtitle string
	URL      string
}

type Config struct {
	ServiceHost string
	ServicePort int
	Blog        BlogConfig
}

// NewConfig reads config.toml (name overridable through CONFIG_NAME) from
// ./config or the working directory, after loading .env.
func NewConfig() (*Config, error) {
	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	log.Info("config parsed")

	return cfg, nil
}
