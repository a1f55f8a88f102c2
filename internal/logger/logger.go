package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppName is attached to every entry so shop and api lines can share a sink.
const AppName = "supermarket"

// New builds the zap logger for env. Production emits JSON; anything else
// emits the console format, colored only when writing to a terminal stream.
// With no outputPaths the logger writes to stdout.
func New(env string, outputPaths ...string) (*zap.Logger, error) {
	if len(outputPaths) == 0 {
		outputPaths = []string{"stdout"}
	}

	config := zap.NewDevelopmentConfig()
	switch {
	case env == "production":
		config = zap.NewProductionConfig()
		config.Encoding = "json"
	case isTerminalSink(outputPaths):
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	config.OutputPaths = outputPaths
	config.ErrorOutputPaths = []string{"stderr"}

	return config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("app", AppName)),
	)
}

// NewWithDefaults builds a stdout logger for SERVER_ENV, falling back to
// zap's production preset when the configured one cannot be built.
func NewWithDefaults() *zap.Logger {
	env := os.Getenv("SERVER_ENV")
	if env == "" {
		env = "development"
	}

	logger, err := New(env)
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}

func isTerminalSink(paths []string) bool {
	for _, p := range paths {
		if p != "stdout" && p != "stderr" {
			return false
		}
	}
	return true
}
