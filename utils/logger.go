package utils

import (
	"go.uber.org/zap"
)

// Logger is the process-wide logger used by handlers and middleware.
var Logger = zap.NewNop()

// InitLogger builds a development logger for local runs and a JSON production logger otherwise.
func InitLogger(env string) error {
	var (
		logger *zap.Logger
		err    error
	)

	switch env {
	case "local":
		logger, err = zap.NewDevelopment()
	case "test":
		logger = zap.NewNop()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	Logger = logger
	return nil
}
