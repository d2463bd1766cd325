// Package paniclog turns panics into errors,
// logging the panic and its stack trace.
package paniclog

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/abhinav/sempress/internal/log"
)

// Handle handles a panic value, logging it and the current stack
// at error level. Returns the error version of the panic, if any.
func Handle(pval interface{}, logger *log.Logger) error {
	if pval == nil {
		return nil
	}

	w := log.Writer{Log: logger, Level: log.Error}
	fmt.Fprintf(&w, "panic: %v\n%s", pval, debug.Stack())
	_ = w.Close()

	switch pval := pval.(type) {
	case string:
		return errors.New(pval)
	case error:
		return pval
	default:
		return fmt.Errorf("panic: %v", pval)
	}
}

// Recover recovers a panic and places it into the given error pointer.
// It must be called directly with defer.
func Recover(err *error, logger *log.Logger) {
	if pval := recover(); pval != nil {
		*err = Handle(pval, logger)
	}
}
