package main

import (
	"errors"

	"ElectionSeed/internal/model"
)

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK         = 0
	exitValidation = 2
	exitUsage      = 3
	exitDB         = 4
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// dataError 源数据问题统一归为校验失败，其余保持原样
func dataError(err error) error {
	switch {
	case errors.Is(err, model.ErrColumnMismatch),
		errors.Is(err, model.ErrMalformedNumber),
		errors.Is(err, model.ErrDuplicateKey),
		errors.Is(err, model.ErrLookupMiss):
		return withCode(exitValidation, err)
	default:
		return err
	}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return 1
}
