package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/Ardou0/Teeko-IA41/engine"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type ServerConfig struct {
	Addr       string
	ConfigPath string
	LogLevel   zerolog.Level
	Tick       time.Duration
}

// loadServerConfig reads the optional .env file then the process environment.
func loadServerConfig() (ServerConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ServerConfig{}, fmt.Errorf("load .env: %w", err)
	}
	level, err := zerolog.ParseLevel(strings.ToLower(getenv("TEEKO_LOG_LEVEL", "info")))
	if err != nil {
		level = zerolog.InfoLevel
	}
	return ServerConfig{
		Addr:       getenv("TEEKO_ADDR", ":8080"),
		ConfigPath: os.Getenv("TEEKO_CONFIG"),
		LogLevel:   level,
		Tick:       time.Duration(getenvInt("TEEKO_TICK_MS", 250)) * time.Millisecond,
	}, nil
}

// loadEngineConfig merges a JSON file over the engine defaults. Fields
// missing from the file keep their default value.
func loadEngineConfig(path string) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read engine config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse engine config %s: %w", path, err)
	}
	return engine.ResolveConfig(cfg), nil
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(value, "%d", &parsed); err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
