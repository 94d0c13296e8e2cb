package errors

import (
	"errors"
	"runtime"

	errorsGo "github.com/go-errors/errors"
)

// error kinds of the encoding pipeline.
// every failure returned by the public API satisfies Is() for exactly one of them.
var (
	ErrDecodeFailed          = errors.New(`image decoding failed`)
	ErrSessionCreationFailed = errors.New(`sixel output session creation failed`)
	ErrProfileUnavailable    = errors.New(`quantization profile unavailable`)
	ErrEncodeFailed          = errors.New(`sixel encoding failed`)
	ErrSinkWriteFailed       = errors.New(`writing to destination failed`)
	ErrInvalidOutputEncoding = errors.New(`sixel output is not valid UTF-8`)
	ErrInvalidPixelBuffer    = errors.New(`invalid pixel buffer`)
	ErrOutputLimit           = errors.New(`sixel output limit exceeded`)
	ErrUnknownBackend        = errors.New(`unknown sixel backend`)
)

func As(err error, target any) bool { return errorsGo.As(err, target) }

func Is(err, target error) bool { return errorsGo.Is(err, target) }

func Join(errs ...error) error {
	// not implemented by github.com/go-errors/errors
	if err := errorsGo.Join(errs...); err != nil {
		if errGo, okErrGo := err.(*errorsGo.Error); okErrGo {
			return errGo
		}
		return errorsGo.Wrap(err, 1)
	}
	return nil
}

func New(obj any) *Error {
	// return nil for nil unlike github.com/go-errors/errors.New()
	if obj == nil {
		return nil
	}
	// don't overwrite origin of failure
	if errGo, okErrGo := obj.(*errorsGo.Error); okErrGo {
		return errGo
	}
	return errorsGo.Wrap(obj, 1)
}

// Kind tags cause with one of the error kinds.
// The result matches both kind and cause with Is().
func Kind(kind, cause error) *Error {
	if kind == nil {
		return New(cause)
	}
	if cause == nil {
		return errorsGo.Wrap(kind, 1)
	}
	if Is(cause, kind) {
		return New(cause)
	}
	return errorsGo.Wrap(&kindError{kind: kind, cause: cause}, 1)
}

type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string   { return e.kind.Error() + `: ` + e.cause.Error() }
func (e *kindError) Unwrap() []error { return []error{e.kind, e.cause} }

func Unwrap(err error) error { return errorsGo.Unwrap(err) }

// remaining "github.com/go-errors/errors" symbols

type Error = errorsGo.Error

func Errorf(format string, a ...interface{}) *Error { return errorsGo.Errorf(format, a...) }

func Wrap(e interface{}, skip int) *Error { return errorsGo.Wrap(e, skip+1) }

func WrapPrefix(e interface{}, prefix string, skip int) *Error {
	return errorsGo.WrapPrefix(e, prefix, skip)
}

// NilReceiver returns an error with the function name if any of the arguments are nil
func NilReceiver(args ...any) error {
	return errMsgNilTester(`nil receiver or struct field`, 3, args...)
}

// NilParam returns an error with the function name if any of the arguments are nil
func NilParam(args ...any) error {
	return errMsgNilTester(`nil parameter`, 3, args...)
}

func errMsgNilTester(msg string, skip int, args ...any) error {
	for i := range args {
		if args[i] == nil {
			goto anyNil
		}
	}
	if len(args) > 0 {
		return nil
	}
anyNil:
	return errMsg(msg, skip)
}

func errMsg(msg string, skip int) error {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return Wrap(msg, skip)
	}
	return Wrap(msg+`: `+runtime.FuncForPC(pc).Name()+`()`, skip)
}
