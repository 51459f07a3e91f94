package config

import (
	"io"

	"github.com/sirupsen/logrus"
)

func parseLevel(level string) (logrus.Level, error) {
	if level == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(level)
}

// NewLogger builds the root logger for the configured level and format.
func (cfg *Config) NewLogger(out io.Writer) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(out)

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	return logrus.NewEntry(logger).WithField("app", "sidenotes")
}
