package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger printf-style логгер поверх zap.
// Пишет JSON в stdout и, если задан файл, дублирует в файл.
type Logger struct {
	sugar *zap.SugaredLogger
	file  *os.File
}

// New создает логгер. file может быть пустым - тогда только stdout.
// level: debug, info, warn, error
func New(file string, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), lvl),
	}

	var f *os.File
	if file != "" {
		if dir := filepath.Dir(file); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("logger: create log dir: %w", err)
			}
		}
		f, err = os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(f), lvl))
	}

	core := zapcore.NewTee(cores...)
	return &Logger{
		sugar: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar(),
		file:  f,
	}, nil
}

// NewNop логгер, который ничего не пишет (для тестов и утилит)
func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// ParseLevel переводит строковый уровень в zapcore.Level
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("logger: unknown level %q", level)
	}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.sugar.Fatalf(format, v...)
}

// Close сбрасывает буферы и закрывает файл
func (l *Logger) Close() error {
	_ = l.sugar.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
