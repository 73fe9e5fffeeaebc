// Package logging builds the process-wide zap logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a development or production logger. With file set, JSON lines
// also go to a rotating file next to the console output.
func New(mode, file string) (*zap.Logger, error) {
	var zc zap.Config
	if mode == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.OutputPaths = []string{"stdout"}

	if file == "" {
		return zc.Build(zap.AddCaller())
	}

	rotate := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    64, // MB
		MaxBackups: 7,
		MaxAge:     30,
		Compress:   true,
	}
	console := zap.NewDevelopmentEncoderConfig()
	if mode == "production" {
		console = zap.NewProductionEncoderConfig()
	}
	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(rotate), zc.Level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(console), zapcore.AddSync(os.Stdout), zc.Level),
	)
	return zap.New(core, zap.AddCaller()), nil
}
