package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies recoverable application errors so the HTTP boundary can map
// them onto the response envelope without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindHistoryDisabled
	KindUpstream
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound is also returned on ownership mismatches. Callers never learn
// whether a record exists under another owner.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// HistoryDisabled marks a write denied by the user's retention policy. It is
// not a failure of the surrounding operation; the chat turn still produces a
// reply, only the storage side effect is skipped.
func HistoryDisabled(message string) *Error {
	return &Error{Kind: KindHistoryDisabled, Message: message}
}

func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

func IsValidation(err error) bool      { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool        { return KindOf(err) == KindNotFound }
func IsHistoryDisabled(err error) bool { return KindOf(err) == KindHistoryDisabled }
func IsUpstream(err error) bool        { return KindOf(err) == KindUpstream }
