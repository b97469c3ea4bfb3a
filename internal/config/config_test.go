package config

import (
	"errors"
	"os"
	"testing"

	"github.com/bobrnor/batch-submit/internal/dispatch"
)

var keys = []string{"JOB_QUEUE", "JOB_DEFINITION", "LOG_LEVEL", "JOB_NAMING", "AWS_REGION"}

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, k := range keys {
		k := k
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, v) })
		} else {
			t.Cleanup(func() { os.Unsetenv(k) })
		}
		os.Unsetenv(k)
	}
	for k, v := range env {
		os.Setenv(k, v)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "path naming with defaults",
			env: map[string]string{
				"JOB_QUEUE":      "queue",
				"JOB_DEFINITION": "definition",
				"LOG_LEVEL":      "INFO",
			},
			want: Config{
				JobQueue:      "queue",
				JobDefinition: "definition",
				LogLevel:      "INFO",
				JobNaming:     dispatch.NamingPath,
				Region:        "us-east-1",
			},
		},
		{
			name: "uuid naming without log level",
			env: map[string]string{
				"JOB_QUEUE":      "queue",
				"JOB_DEFINITION": "definition",
				"JOB_NAMING":     "uuid",
				"AWS_REGION":     "eu-west-1",
			},
			want: Config{
				JobQueue:      "queue",
				JobDefinition: "definition",
				JobNaming:     dispatch.NamingUUID,
				Region:        "eu-west-1",
			},
		},
		{
			name:    "missing job queue",
			env:     map[string]string{"JOB_DEFINITION": "definition", "LOG_LEVEL": "INFO"},
			wantErr: true,
		},
		{
			name:    "missing job definition",
			env:     map[string]string{"JOB_QUEUE": "queue", "LOG_LEVEL": "INFO"},
			wantErr: true,
		},
		{
			name:    "empty job queue",
			env:     map[string]string{"JOB_QUEUE": "", "JOB_DEFINITION": "definition", "LOG_LEVEL": "INFO"},
			wantErr: true,
		},
		{
			name:    "path naming without log level",
			env:     map[string]string{"JOB_QUEUE": "queue", "JOB_DEFINITION": "definition"},
			wantErr: true,
		},
		{
			name:    "unknown log level",
			env:     map[string]string{"JOB_QUEUE": "queue", "JOB_DEFINITION": "definition", "LOG_LEVEL": "LOUD"},
			wantErr: true,
		},
		{
			name:    "unknown naming",
			env:     map[string]string{"JOB_QUEUE": "queue", "JOB_DEFINITION": "definition", "JOB_NAMING": "sequential"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)

			got, err := Load()
			if tt.wantErr {
				if !errors.Is(err, ErrConfig) {
					t.Fatalf("expected ErrConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
