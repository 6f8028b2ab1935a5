package utils

import (
	"go.uber.org/zap"
)

// Logger is the process-wide structured logger.
var Logger *zap.Logger

// InitLogger sets up the global logger. Production mode logs JSON at
// info level; anything else gets the human-readable development config.
func InitLogger(environment string) error {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = logger
	return nil
}
