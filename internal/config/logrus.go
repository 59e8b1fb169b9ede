package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	l.SetOutput(os.Stdout)
	return l
}

func GetLogger() *logrus.Logger {
	return logg
}

// SetLogLevel applies a textual level; unknown values keep the current level.
func SetLogLevel(level string) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		logg.SetLevel(lvl)
	} else {
		logg.WithField("level", level).Warn("unknown LOG_LEVEL, keeping default")
	}
}

func LogError(logger *logrus.Logger, moduleName string, funcName string, context string, data any, err error) {
	fields := logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  context,
	}
	if data != nil {
		fields["data"] = data
	}
	logger.WithFields(fields).Error(err.Error())
}
