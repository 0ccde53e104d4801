package core

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

func getLogger() *logger {
	once.Do(
		func() {
			l := log.NewWithOptions(os.Stderr, log.Options{
				ReportCaller:    true,
				ReportTimestamp: true,
				TimeFormat:      time.RFC3339,
				Prefix:          "Assets 📦",
			})
			l.SetLevel(log.InfoLevel)
			singleton = &logger{l}
		})
	return singleton
}

// SetLogLevel changes the minimum level of the shared logger.
// Accepted values are "debug", "info", "warn" and "error".
func SetLogLevel(level string) error {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return err
	}
	getLogger().SetLevel(lvl)
	return nil
}

func parseLogLevel(level string) (log.Level, error) {
	switch level {
	case "debug", "info", "warn", "error":
		return log.ParseLevel(level)
	}
	return 0, fmt.Errorf("unknown log level '%s'", level)
}

// SetLogOutput redirects the shared logger, mostly useful in tests.
func SetLogOutput(w io.Writer) {
	getLogger().SetOutput(w)
}

func SetLogReportCaller(report bool) {
	getLogger().SetReportCaller(report)
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}
