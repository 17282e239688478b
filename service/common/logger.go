package common

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerArgs struct {
	Dev bool `arg:"--dev,env:TABULA_DEV" help:"human readable debug logs"`
}

// NewLogger builds the process logger and installs it as the zap global.
func NewLogger(dev bool) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error
	if dev {
		logger, err = zap.NewDevelopment()
	} else {
		config := zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
		logger, err = config.Build(
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to construct logger: %v", err)
	}
	_ = zap.ReplaceGlobals(logger)
	return logger, nil
}
