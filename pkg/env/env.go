package env

import (
	"os"
	"strings"
)

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// FirstOf returns the first non-empty variable among keys, or fallback.
func FirstOf(fallback string, keys ...string) string {
	for _, key := range keys {
		if val := Get(key, ""); val != "" {
			return val
		}
	}
	return fallback
}

// InstanceID names this process in logs. Hosted dynos and containers set one
// of the keys; local runs fall back to "local".
func InstanceID() string {
	return FirstOf("local", "VAULT_INSTANCE_ID", "DYNO", "HOSTNAME")
}
