package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var (
	errConfigExists = errors.New("config file already exists")
	errCancelled    = errors.New("cancelled")
)

// usageError marks malformed command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

// flagError converts flag parsing failures into usage errors.
func flagError(_ *cobra.Command, err error) error {
	return &usageError{err: err}
}

// noArgs rejects positional arguments with a usage error.
func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &usageError{err: fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))}
	}
	return nil
}
