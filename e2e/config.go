package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// API_ADDR is the base URL of a running server, e.g. http://localhost:3000/api
	APIAddr string `envconfig:"API_ADDR"`
	// HEALTH_ADDR is the host:port of the gRPC health server
	HealthAddr string `envconfig:"HEALTH_ADDR" default:"localhost:3001"`
	// E2E_DEBUG_JSON allows dumping full HTTP request/response bodies
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
