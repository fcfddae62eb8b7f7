// Package config loads the serving workloads' configuration from flags,
// with HOSTBENCH_* environment variables layered on top.
//
// The cpu-hash workload does not use this package; its only input is the
// bare positional iteration count.
package config

import (
	"flag"
	"os"
	"strconv"
)

// Mode selects the serving implementation.
type Mode string

const (
	// ModeRaw serves on the event-loop engine (epoll/kqueue).
	ModeRaw Mode = "raw"

	// ModeH2C serves on net/http with cleartext HTTP/2 support.
	ModeH2C Mode = "h2c"
)

// Config holds all serving workload configuration.
type Config struct {
	Port        int
	Env         string
	Mode        Mode
	IdleTimeout int // seconds
}

// New loads configuration from the command line and environment.
func New() *Config {
	return parse(flag.CommandLine, os.Args[1:])
}

func parse(fs *flag.FlagSet, args []string) *Config {
	cfg := &Config{}
	var mode string

	fs.IntVar(&cfg.Port, "port", 8080, "HTTP server port")
	fs.StringVar(&cfg.Env, "env", "development", "Environment (development/production)")
	fs.StringVar(&mode, "mode", string(ModeRaw), "Serving mode (raw/h2c)")
	fs.IntVar(&cfg.IdleTimeout, "idle-timeout", 5, "Idle connection timeout (seconds)")

	fs.Parse(args)
	cfg.Mode = Mode(mode)

	cfg.applyEnv()
	return cfg
}

// applyEnv overrides flag values with HOSTBENCH_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("HOSTBENCH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("HOSTBENCH_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("HOSTBENCH_MODE"); v != "" {
		c.Mode = Mode(v)
	}
	if v := os.Getenv("HOSTBENCH_IDLE_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.IdleTimeout = secs
		}
	}
}
