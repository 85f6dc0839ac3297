// Package logging configures the process logger for the CLI layer. The
// valuation engine itself never logs; pricing stays pure.
package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	// Level is a logrus level name (debug, info, warn, error).
	Level string
	// Format is "text" or "json".
	Format string
	// Output is "stdout", "stderr", or a file path (rotated via lumberjack).
	Output string
	// MaxAgeDays bounds rotated file retention when Output is a file path.
	MaxAgeDays int
}

// New builds a configured logrus logger.
func New(opts Options) (*logrus.Logger, error) {
	log := logrus.New()

	level := strings.ToLower(opts.Level)
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging.New: invalid log level %q", opts.Level)
	}
	log.SetLevel(lvl)

	switch opts.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	default:
		return nil, fmt.Errorf("logging.New: invalid log format %q", opts.Format)
	}

	switch opts.Output {
	case "stdout", "":
		log.SetOutput(os.Stdout)
	case "stderr":
		log.SetOutput(os.Stderr)
	default:
		maxAge := opts.MaxAgeDays
		if maxAge <= 0 {
			maxAge = 28
		}
		log.SetOutput(&lumberjack.Logger{
			Filename: opts.Output,
			MaxAge:   maxAge,
			MaxSize:  100,
			Compress: true,
		})
	}

	return log, nil
}
