package protection

import (
	"github.com/dmitrymomot/botguard/pkg/config"
	"github.com/dmitrymomot/botguard/pkg/logger"
	"github.com/dmitrymomot/botguard/pkg/secrets"
)

// Config groups the settings of every part of the layer.
type Config struct {
	Secrets secrets.Config
	Log     logger.FileConfig
}

// LoadConfig reads Config from the environment (and .env files, see
// config.LoadEnv).
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
