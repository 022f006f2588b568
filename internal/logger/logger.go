package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/certquiz-bot/internal/config"
)

// New builds a zap logger for the configured environment. Output paths
// replace the default stderr sink when given.
func New(cfg *config.Config, outputPaths ...string) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zcfg.Level = level
	}

	if len(outputPaths) > 0 {
		zcfg.OutputPaths = outputPaths
		zcfg.ErrorOutputPaths = outputPaths
	}

	return zcfg.Build(zap.Fields(zap.String("env", cfg.Env)))
}
