package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds a JSON logger at the given level. Invalid levels fall back to info.
func New(level string) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stdout)

	return log
}

// RedactEmail masks the local part of an address so log lines never carry a
// full identifier: "someone@example.com" -> "s***@example.com".
func RedactEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

// RedactID keeps only a short prefix of an opaque identifier.
func RedactID(id string) string {
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "***"
}
