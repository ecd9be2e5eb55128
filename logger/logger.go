package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger: colored console output plus a plain-text file
// under logDir. The file sink is best-effort; if the directory cannot be
// created the bot still runs with console logging only.
func New(logDir string) (*zap.Logger, error) {
	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleCfg),
		zapcore.Lock(os.Stdout),
		zapcore.InfoLevel,
	)

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return zap.New(consoleCore), fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	logFile, err := os.OpenFile(filepath.Join(logDir, "bot.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.New(consoleCore), fmt.Errorf("failed to open log file: %w", err)
	}

	fileCfg := zap.NewProductionEncoderConfig()
	fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(fileCfg),
		zapcore.AddSync(logFile),
		zapcore.InfoLevel,
	)

	return zap.New(zapcore.NewTee(consoleCore, fileCore)), nil
}
