package logger

import (
	"os"

	"github.com/sirupsen/logrus"

	"memories/internal/config"
)

// Init configures the standard logrus logger for the process.
func Init(cfg *config.Config) {
	logrus.SetOutput(os.Stdout)

	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	logrus.WithField("environment", cfg.Environment).Info("Logger initialized")
}
