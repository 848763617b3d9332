// Package logger builds the zap logger shared by the server and the tools.
package logger

import (
	"go.uber.org/zap"
)

// New returns a sugared logger. Development mode uses the human-friendly
// console encoder at debug level; otherwise the JSON production config.
func New(dev bool) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if dev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

