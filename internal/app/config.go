package app

import (
	"strings"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/engine"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/utils"
)

type Config struct {
	Port        string
	Environment string
	// Engine holds every rating tunable; defaults in code, optionally
	// overlaid from the YAML file at ENGINE_CONFIG_PATH.
	Engine engine.Config
	// ExtraCORSOrigins supplements the local-dev allowlist.
	ExtraCORSOrigins []string
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:        utils.GetEnv("PORT", "8080", log),
		Environment: utils.GetEnv("APP_ENV", "development", log),
	}

	enginePath := utils.GetEnv("ENGINE_CONFIG_PATH", "", log)
	engineCfg, err := engine.Load(enginePath)
	if err != nil {
		return Config{}, err
	}
	cfg.Engine = engineCfg

	if raw := utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.ExtraCORSOrigins = append(cfg.ExtraCORSOrigins, origin)
			}
		}
	}
	return cfg, nil
}
