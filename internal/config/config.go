// Package config holds the small amount of environment-derived runtime
// configuration the serve subcommand needs. The teacher reads PORT directly
// in main(); this just gives that same pattern a named home.
package config

import "os"

// ServerConfig configures the optional HTTP surface.
type ServerConfig struct {
	Port string
}

// FromEnv builds a ServerConfig from the environment, defaulting Port to
// "8080" when PORT is unset, matching the teacher's main.go.
func FromEnv() ServerConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return ServerConfig{Port: port}
}
