// Package logger собирает zap-логгер сервера.
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config содержит настройки логгера.
type Config struct {
	Level      string // Уровень логирования (debug, info, warn, error)
	Encoding   string // Формат вывода (json или console)
	OutputPath string // Путь к файлу лога, пусто значит stdout
	Service    string // Имя сервиса, попадает в каждую запись полем "service"
	// Development включает caller и стектрейсы для ошибок.
	Development bool
}

// ParseLevel разбирает уровень логирования. Пустая строка дает info.
func ParseLevel(raw string) (zapcore.Level, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", raw, err)
	}
	return level, nil
}

// New создает zap.Logger по конфигурации.
// Неизвестный уровень заменяется на info, неизвестный формат на json.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		// Логгера еще нет, поэтому пишем прямо в stderr
		fmt.Fprintf(os.Stderr, "%v, using 'info'\n", err)
	}

	// Кодировщик: ISO8601 время в поле timestamp, уровни заглавными (INFO, WARN)
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoding := strings.ToLower(strings.TrimSpace(cfg.Encoding))
	if encoding != "console" && encoding != "json" {
		encoding = "json"
	}
	if encoding == "console" && cfg.Development {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder // Цвет только для терминала
	}

	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = "stdout"
	}

	// Поля, которые добавляются к каждой записи
	var initialFields map[string]any
	if cfg.Service != "" {
		initialFields = map[string]any{"service": cfg.Service}
	}

	zapConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Development,
		DisableCaller:     !cfg.Development,
		DisableStacktrace: !cfg.Development, // В dev-режиме стектрейс пишется начиная с warn
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{outputPath}, // Основные логи
		ErrorOutputPaths:  []string{"stderr"},   // Ошибки самого логгера
		InitialFields:     initialFields,
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
