package instrumentator

import (
	"github.com/joeshaw/envdecode"
	"github.com/pkg/errors"
)

// Config holds environment-driven settings. It is typically embedded in a
// service config struct decoded with envdecode, or loaded standalone with
// ConfigFromEnv.
type Config struct {
	// Enabled turns request instrumentation on or off. When disabled the
	// middleware passes requests through untouched.
	Enabled bool `env:"ENABLE_METRICS,default=true"`

	// MetricsPath is the route the exposition handler should be mounted
	// on.
	MetricsPath string `env:"METRICS_PATH,default=/metrics"`
}

// ConfigFromEnv decodes Config from the process environment.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode instrumentator config")
	}
	return cfg, nil
}
