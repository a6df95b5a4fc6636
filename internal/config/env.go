// Package config provides environment configuration helpers for go-waypath
// commands.
package config

import "os"

// Env var names read by the commands.
const (
	EnvSpeechEngineURL    = "SPEECH_ENGINE_URL"
	EnvGoogleAPIKey       = "GOOGLE_API_KEY"
	EnvGoogleClientID     = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvPort               = "WAYPATH_PORT"
)

// Env returns the named environment variable, or the fallback when unset.
func Env(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// SpeechEngineURL returns the speech engine websocket URL, empty when
// unconfigured.
func SpeechEngineURL() string {
	return os.Getenv(EnvSpeechEngineURL)
}

// GoogleAPIKey returns the Gemini API key, empty when unconfigured.
func GoogleAPIKey() string {
	return os.Getenv(EnvGoogleAPIKey)
}

// GoogleOAuth returns the OAuth client credentials for transcript export.
// Both are empty when export is unconfigured.
func GoogleOAuth() (clientID, clientSecret string) {
	return os.Getenv(EnvGoogleClientID), os.Getenv(EnvGoogleClientSecret)
}

// Port returns the control server port.
func Port(fallback string) string {
	return Env(EnvPort, fallback)
}
