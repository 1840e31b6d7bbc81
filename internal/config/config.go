// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GeminiAPIKey      string
	GeminiModel       string
	GeminiEndpoint    string
	ListenAddr        string
	DBPath            string
	RevalidateSession bool
}

// Load reads configuration from environment variables and returns a validated Config.
// Before reading, each of envFiles (".env" when none are given) is loaded if it
// exists; variables already present in the environment take precedence.
//
// RECIPEFINDER_GEMINI_API_KEY is required (API_KEY is accepted as a fallback).
// Optional variables with defaults: RECIPEFINDER_GEMINI_MODEL (gemini-2.5-flash),
// RECIPEFINDER_GEMINI_ENDPOINT (the public API), RECIPEFINDER_LISTEN_ADDR
// (127.0.0.1:8080), RECIPEFINDER_DB_PATH (recipefinder.db),
// RECIPEFINDER_REVALIDATE_SESSION (true).
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %q: %w", path, err)
		}
	}

	apiKey := os.Getenv("RECIPEFINDER_GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("RECIPEFINDER_GEMINI_API_KEY is required")
	}

	model := "gemini-2.5-flash"
	if v, ok := os.LookupEnv("RECIPEFINDER_GEMINI_MODEL"); ok && v != "" {
		model = v
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("RECIPEFINDER_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "recipefinder.db"
	if v, ok := os.LookupEnv("RECIPEFINDER_DB_PATH"); ok {
		dbPath = v
	}

	revalidate := true
	if v, ok := os.LookupEnv("RECIPEFINDER_REVALIDATE_SESSION"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("RECIPEFINDER_REVALIDATE_SESSION has invalid boolean %q: %w", v, err)
		}
		revalidate = parsed
	}

	return &Config{
		GeminiAPIKey:      apiKey,
		GeminiModel:       model,
		GeminiEndpoint:    os.Getenv("RECIPEFINDER_GEMINI_ENDPOINT"),
		ListenAddr:        listenAddr,
		DBPath:            dbPath,
		RevalidateSession: revalidate,
	}, nil
}
