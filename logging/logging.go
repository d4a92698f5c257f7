package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// InitLogger sets the level of the shared logger. Packages that grabbed the
// logger in init() see the change since the instance is never replaced.
func InitLogger(level logrus.Level) {
	logger.SetLevel(level)
}

// InitLoggerFromString parses a level name such as "debug" or "warn".
func InitLoggerFromString(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	InitLogger(lvl)
	return nil
}

func GetLogger() *logrus.Logger {
	return logger
}
