package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func BuildDevelopmentLogger() (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return config.Build()
}

func BuildProductionLogger(outputFilePath string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{outputFilePath}
	return cfg.Build()
}

// BuildLogger returns a no-op logger when disabled, a JSON file logger when
// outputFilePath is set and a colored console logger otherwise.
func BuildLogger(enabled bool, outputFilePath string) (*zap.Logger, error) {
	if !enabled {
		return zap.NewNop(), nil
	}

	if outputFilePath != "" {
		return BuildProductionLogger(outputFilePath)
	}

	return BuildDevelopmentLogger()
}
