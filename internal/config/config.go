// Package config reads the submit lambda settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/bobrnor/batch-submit/internal/dispatch"
	"github.com/bobrnor/batch-submit/internal/logging"
)

// ErrConfig marks a missing or invalid environment value.
var ErrConfig = errors.New("bad config")

type Config struct {
	JobQueue      string `envconfig:"JOB_QUEUE" required:"true"`
	JobDefinition string `envconfig:"JOB_DEFINITION" required:"true"`
	LogLevel      string `envconfig:"LOG_LEVEL"`
	JobNaming     string `envconfig:"JOB_NAMING" default:"path"`
	Region        string `envconfig:"AWS_REGION" default:"us-east-1"`
}

// Load reads and validates the environment. It is called once per
// invocation so that changed values are picked up without a cold start.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfig, err.Error())
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.JobQueue == "" {
		return fmt.Errorf("%w: JOB_QUEUE is empty", ErrConfig)
	}
	if c.JobDefinition == "" {
		return fmt.Errorf("%w: JOB_DEFINITION is empty", ErrConfig)
	}

	switch c.JobNaming {
	case dispatch.NamingPath:
		// path naming logs every job name, so the level must be set explicitly
		if c.LogLevel == "" {
			return fmt.Errorf("%w: LOG_LEVEL is required for %s naming", ErrConfig, dispatch.NamingPath)
		}
	case dispatch.NamingUUID:
	default:
		return fmt.Errorf("%w: unknown JOB_NAMING %q", ErrConfig, c.JobNaming)
	}

	if c.LogLevel != "" {
		if _, err := logging.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: %s", ErrConfig, err.Error())
		}
	}
	return nil
}
