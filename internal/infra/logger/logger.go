package logger

import (
	"go.uber.org/zap"
)

// New builds the process-wide zap logger. Development mode is keyed off
// GIN_MODE by the caller; here we always emit structured JSON.
func New(appName string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	log, err := cfg.Build(zap.Fields(zap.String("app", appName)))
	if err != nil {
		return nil, err
	}
	return log, nil
}
