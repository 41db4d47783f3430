// Copyright 2026 Sonic Labs
// This file is part of Tailgen Tail-Dependent Sampler
//
// Tailgen is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tailgen is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Tailgen. If not, see <http://www.gnu.org/licenses/>.

package logger

import (
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

const defaultLogFormat = "%{color}%{time:2006-01-02 15:04:05.000} %{level:.4s} %{module}:%{color:reset} %{message}"

// LogLevelFlag defines the verbosity of a command.
var LogLevelFlag = cli.StringFlag{
	Name:  "log",
	Usage: "level of the logging of the app action (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\"; default: INFO)",
	Value: "info",
}

// Logger is the leveled logger handed to commands and samplers.
type Logger interface {
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Panic(args ...interface{})
	Panicf(format string, args ...interface{})
	Critical(args ...interface{})
	Criticalf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Warning(args ...interface{})
	Warningf(format string, args ...interface{})
	Notice(args ...interface{})
	Noticef(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	IsEnabledFor(level logging.Level) bool
}

// NewLogger creates a logger for module writing to stdout. An unknown
// level falls back to INFO.
func NewLogger(level string, module string) Logger {
	log := logging.MustGetLogger(module)
	format := logging.MustStringFormatter(defaultLogFormat)
	backend := logging.NewLogBackend(os.Stdout, "", 0)
	leveledBackend := logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))

	logLevel, err := logging.LogLevel(level)
	if err != nil {
		log.Errorf("cannot parse log level %v; using INFO", level)
		logLevel = logging.INFO
	}
	leveledBackend.SetLevel(logLevel, module)
	log.SetBackend(leveledBackend)
	// IsEnabledFor consults the package-level backend
	logging.SetLevel(logLevel, module)
	return log
}

// ParseTime splits elapsed into hours, minutes and seconds.
func ParseTime(elapsed time.Duration) (uint32, uint32, uint32) {
	total := uint32(elapsed.Round(time.Second).Seconds())
	hours := total / 3600
	minutes := total % 3600 / 60
	seconds := total % 60
	return hours, minutes, seconds
}
