package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is shared by every package in the service.
var Logger = logrus.New()

// servicePrefixHook tags each entry with the service name, both as a
// "[name] " message prefix and as a "service" field for JSON output.
type servicePrefixHook struct {
	service string
}

func (h servicePrefixHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h servicePrefixHook) Fire(entry *logrus.Entry) error {
	if !strings.HasPrefix(entry.Message, "["+h.service+"] ") {
		entry.Message = "[" + h.service + "] " + entry.Message
	}
	entry.Data["service"] = h.service
	return nil
}

// parseLogLevel maps a LOG_LEVEL value onto a logrus level. An empty value is
// info; an unknown value is info and ok=false.
func parseLogLevel(raw string) (logrus.Level, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return logrus.InfoLevel, true
	}
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		return logrus.InfoLevel, false
	}
	return level, true
}

func formatterFor(raw string) logrus.Formatter {
	if strings.EqualFold(strings.TrimSpace(raw), "json") {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{FullTimestamp: true}
}

func configureLogger(l *logrus.Logger, service, level, format string) {
	lvl, ok := parseLogLevel(level)
	l.SetLevel(lvl)
	l.SetFormatter(formatterFor(format))
	// Replacing rather than adding keeps repeated init calls from stacking prefixes.
	l.ReplaceHooks(logrus.LevelHooks{})
	l.AddHook(servicePrefixHook{service: service})
	if !ok {
		l.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", level)
	}
}

// InitLogger points the shared Logger at stdout and applies LOG_LEVEL and
// LOG_FORMAT (text or json) from the environment.
func InitLogger(appName string) {
	Logger.SetOutput(os.Stdout)
	configureLogger(Logger, appName, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}
