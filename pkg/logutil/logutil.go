// Package logutil provides logging utilities.
package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
)

var output io.Writer = io.Discard

var loggers []*log.Logger

// GetLogger gets a logger with a prefix. The logger writes to the output set
// by SetOutput or SetOutputFile, which defaults to discarding everything.
func GetLogger(prefix string) *log.Logger {
	logger := log.New(output, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to the
// new io.Writer. It also affects loggers obtained in future.
func SetOutput(newout io.Writer) {
	output = newout
	for _, logger := range loggers {
		logger.SetOutput(output)
	}
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger to
// the named file. It also affects loggers obtained in future. If the name is
// empty, the loggers are redirected to discard output.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %v: %v", fname, err)
	}
	SetOutput(file)
	return nil
}
