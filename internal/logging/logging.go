package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/config"
)

// New builds the process logger. Output goes to out, which the CLI points at stderr
// so the report on stdout stays clean. An unknown level falls back to info.
func New(cfg config.LogConfig, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	logLevel, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	return logger
}
