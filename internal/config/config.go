package config

import (
	"os"
	"strings"
)

// Get returns the value of an environment variable, or fallback when unset
// or blank.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Bool interprets an environment flag; "1", "true", and "yes" (any case)
// enable it. Unset means disabled.
func Bool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true
	}
	return false
}
