// Package helpers provides common utility functions used across the project.
package helpers

import (
	"os"
	"strconv"
	"time"
)

// GetStringFromEnv returns the environment variable value or default if not set or empty.
//
// Input: environment variable key and default value
// Output: string value from environment or default
// Behavior: Returns default if env var is empty or not set
//
// Example:
//
//	url := helpers.GetStringFromEnv("QDRANT_URL", "http://localhost:6334")
//	model := helpers.GetStringFromEnv("CHAT_MODEL", "llama2")
func GetStringFromEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetIntFromEnv returns the environment variable value as int or default if not set or invalid.
//
// Input: environment variable key and default int value
// Output: int value from environment or default
// Behavior: Returns default if env var is empty, not set, or not a valid integer
//
// Example:
//
//	topK := helpers.GetIntFromEnv("TOP_K", 5)
//	sampleSize := helpers.GetIntFromEnv("DEMO_SAMPLE_SIZE", 5000)
func GetIntFromEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetInt64FromEnv returns the environment variable value as int64 or default if not set or invalid.
//
// Input: environment variable key and default int64 value
// Output: int64 value from environment or default
// Behavior: Returns default if env var is empty, not set, or not a valid integer
//
// Example:
//
//	seed := helpers.GetInt64FromEnv("SAMPLE_SEED", 42)
func GetInt64FromEnv(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetBoolFromEnv returns the environment variable value as bool or default if not set or invalid.
//
// Input: environment variable key and default bool value
// Output: bool value from environment or default
// Behavior: Returns default if env var is empty, not set, or not a valid boolean
//
// Example:
//
//	cacheEnabled := helpers.GetBoolFromEnv("ANSWER_CACHE", true)
func GetBoolFromEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// GetDurationFromEnv returns the environment variable value as duration or default if not set or invalid.
//
// Input: environment variable key and default duration value
// Output: time.Duration value from environment or default
// Behavior: Returns default if env var is empty, not set, or not a valid duration string
//
// Example:
//
//	timeout := helpers.GetDurationFromEnv("GENERATION_TIMEOUT", 10*time.Second)
func GetDurationFromEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
