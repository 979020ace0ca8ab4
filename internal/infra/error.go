package infra

import (
	"errors"
	"log/slog"

	"promenu/internal/pkg/errs"
)

type BackendErrorKind string

// BackendError wraps a low-level backend failure with a classification the
// usecase layer can branch on without knowing the driver.
type BackendError struct {
	Kind BackendErrorKind
	msg  string
	err  error
}

func (e BackendError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e BackendError) Unwrap() error {
	return e.err
}

func WrapBackendErr(slogger *slog.Logger, kind BackendErrorKind, msg string, err error) error {
	slogger.Error("Backend error: "+msg, slog.String("kind", string(kind)))

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return BackendError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind BackendErrorKind) bool {
	var e BackendError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

const (
	KindNotFound     BackendErrorKind = "NOT_FOUND"
	KindDBFailure    BackendErrorKind = "DB_FAILURE"
	KindDuplicateKey BackendErrorKind = "DUPLICATE_KEY"
)
