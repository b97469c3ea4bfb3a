// Package logging maps LOG_LEVEL names onto klog verbosity.
package logging

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"k8s.io/klog/v2"
)

const (
	ERROR   = 1
	WARNING = 2
	INFO    = 3
	DEBUG   = 4
	TRACE   = 5
)

var levels = map[string]int{
	"CRITICAL": 0,
	"FATAL":    0,
	"ERROR":    ERROR,
	"WARNING":  WARNING,
	"WARN":     WARNING,
	"INFO":     INFO,
	"DEBUG":    DEBUG,
	"TRACE":    TRACE,
}

var (
	mu    sync.Mutex
	flags *flag.FlagSet
)

// ParseLevel returns the klog verbosity for a level name.
func ParseLevel(name string) (int, error) {
	v, ok := levels[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return v, nil
}

// SetLevel sets the global klog verbosity from a level name.
func SetLevel(name string) error {
	v, err := ParseLevel(name)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if flags == nil {
		flags = flag.NewFlagSet("klog", flag.ContinueOnError)
		klog.InitFlags(flags)
	}
	return flags.Set("v", strconv.Itoa(v))
}
