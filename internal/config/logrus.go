package config

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger JSON-логгер в stderr: stdout занят JSON-результатом CLI
func NewLogger(level string) (*logrus.Logger, error) {
	return newLogger(level, os.Stderr)
}

func newLogger(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logg := logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(lvl)
	logg.SetOutput(out)
	return logg, nil
}

func LogError(logger logrus.FieldLogger, moduleName string, funcName string, context string, data any, err error) {
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
