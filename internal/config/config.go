package config

import (
	"os"

	"github.com/subosito/gotenv"

	"github.com/pennyflow/pennyflow-backend/internal/engine"
)

type Config struct {
	ProjectID     string
	Region        string
	LogLevel      string
	Port          string
	StorageBucket string
	CatchUpPolicy engine.CatchUpPolicy
}

func New() *Config {
	// Local development reads a .env file; deployed environments set real
	// env vars and the load is a silent no-op.
	_ = gotenv.Load()

	return &Config{
		ProjectID:     os.Getenv("PROJECTID"),
		Region:        os.Getenv("REGION"),
		LogLevel:      os.Getenv("LOGLEVEL"),
		Port:          getPort(os.Getenv("PORT")),
		StorageBucket: os.Getenv("STORAGEBUCKET"),
		CatchUpPolicy: getCatchUpPolicy(os.Getenv("CATCHUPPOLICY")),
	}
}

func getPort(port string) string {
	if port == "" {
		return "8080"
	}
	return port
}

func getCatchUpPolicy(policy string) engine.CatchUpPolicy {
	switch policy {
	case "backfill":
		return engine.CatchUpBackfill
	default: // "single"
		return engine.CatchUpSingle
	}
}
