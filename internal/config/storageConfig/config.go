package storageConfig

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	CONFIG_STORAGE_PATH = "CONFIG_STORAGE_PATH"
)

type Config struct {
	Host           string `yaml:"host" env-required:"true"`
	Port           string `yaml:"port" env-required:"true"`
	Username       string `yaml:"username" env-required:"true"`
	Password       string `yaml:"password" env:"DB_PASSWORD" env-required:"true"`
	DBName         string `yaml:"db_name" env-required:"true"`
	SSLMode        string `yaml:"ssl_mode" env-required:"true"`
	MigrationsPath string `yaml:"migrations_path" env-default:"migrations"`
}

func MustLoadStorageConfig() (*Config, error) {

	configPath := os.Getenv(CONFIG_STORAGE_PATH)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set", CONFIG_STORAGE_PATH)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s does not exist %s", CONFIG_STORAGE_PATH, configPath)
	}
	var config Config

	if err := cleanenv.ReadConfig(configPath, &config); err != nil {
		return nil, fmt.Errorf("cannot load database config file: %s", err)
	}

	return &config, nil
}
