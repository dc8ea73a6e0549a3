// Package logging provides component-scoped logrus loggers for the CLI.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// LevelEnvVar overrides the default log level when set (e.g. "debug").
const LevelEnvVar = "SCREENUX_LOG_LEVEL"

var (
	base     *logrus.Logger
	baseOnce sync.Once
)

func baseLogger() *logrus.Logger {
	baseOnce.Do(func() {
		base = logrus.New()
		base.SetOutput(os.Stderr)
		base.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
		base.SetLevel(defaultLevel())
	})
	return base
}

func defaultLevel() logrus.Level {
	if raw := os.Getenv(LevelEnvVar); raw != "" {
		if level, err := logrus.ParseLevel(strings.ToLower(raw)); err == nil {
			return level
		}
	}
	return logrus.InfoLevel
}

// NewLogger returns a logger entry tagged with the given component name.
func NewLogger(component string) *logrus.Entry {
	return baseLogger().WithField("component", component)
}

// SetVerbose switches the shared logger to debug level.
func SetVerbose(verbose bool) {
	if verbose {
		baseLogger().SetLevel(logrus.DebugLevel)
	}
}

// SetQuiet raises the shared logger threshold to warnings only.
func SetQuiet(quiet bool) {
	if quiet {
		baseLogger().SetLevel(logrus.WarnLevel)
	}
}
