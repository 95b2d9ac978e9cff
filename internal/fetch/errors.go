package fetch

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// Kind classifies why a request failed
type Kind string

const (
	KindNetwork Kind = "NETWORK"
	KindServer  Kind = "SERVER"
	KindDecode  Kind = "DECODE"
	KindInvalid Kind = "INVALID"
)

// User-facing failure reasons
const (
	ReasonNetwork   = "network error"
	ReasonUnknown   = "unknown error"
	ReasonMalformed = "malformed response"
)

// Error is the single error type produced by a Machine run
type Error struct {
	Kind    Kind
	Status  int    // HTTP status for KindServer
	Message string // server-provided error_msg, if any
	Err     error
	Stack   []byte
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindServer:
		return fmt.Sprintf("%s: status %d: %s", e.Kind, e.Status, e.Reason())
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StackTrace() []byte {
	return e.Stack
}

// Reason is the text shown in a failure panel
func (e *Error) Reason() string {
	switch e.Kind {
	case KindNetwork:
		return ReasonNetwork
	case KindDecode:
		return ReasonMalformed
	case KindInvalid:
		return e.Message
	}
	if e.Message != "" {
		return e.Message
	}
	return ReasonUnknown
}

func newError(kind Kind, err error) *Error {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(string(kind)).Stack()
	}
	return &Error{Kind: kind, Err: err, Stack: stack}
}

// NetworkError reports a transport failure where no response was received
func NetworkError(err error) *Error {
	return newError(KindNetwork, err)
}

// ServerError reports a non-2xx response. message may be empty.
func ServerError(status int, message string) *Error {
	e := newError(KindServer, nil)
	e.Status = status
	e.Message = message
	return e
}

// DecodeError reports a body that does not match the expected shape
func DecodeError(err error) *Error {
	return newError(KindDecode, err)
}

// InvalidError reports a request that was refused before being sent
func InvalidError(message string) *Error {
	e := newError(KindInvalid, nil)
	e.Message = message
	return e
}
