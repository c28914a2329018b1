package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const defaultPath = "~/.shelf.db"

// ConfigPathEnv names a directory searched first for the .shelf config file.
const ConfigPathEnv = "SHELF_CONFIG_PATH"

// Config tells the store where its key-value directory lives.
type Config interface {
	BasePath() string
}

// LoadConfig looks for a .shelf config file in $SHELF_CONFIG_PATH and the
// working directory. SHELF_PATH overrides the path setting.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetConfigName(".shelf") // .yaml is implicit
	v.SetEnvPrefix("SHELF")
	v.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

// PathConfig is a Config fixed to one directory.
type PathConfig string

func (p PathConfig) BasePath() string {
	return string(p)
}
