package api

import (
	"fmt"

	"github.com/go-errors/errors"
)

// ErrorKind classifies a failed request.
type ErrorKind int

const (
	// KindInvalidURL means the base URL and endpoint path did not form an absolute URL.
	KindInvalidURL ErrorKind = iota + 1
	// KindEncode means the request params could not be serialized.
	KindEncode
	// KindTransport means the HTTP round trip failed.
	KindTransport
	// KindNoData means the node answered with an empty body.
	KindNoData
	// KindDecode means the body was not valid JSON.
	KindDecode
)

var (
	ErrInvalidURL = errors.New("invalid URL")
	ErrEncode     = errors.New("failed to encode request params")
	ErrTransport  = errors.New("request failed")
	ErrNoData     = errors.New("no data returned")
	ErrDecode     = errors.New("failed to decode response")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindInvalidURL:
		return ErrInvalidURL
	case KindEncode:
		return ErrEncode
	case KindTransport:
		return ErrTransport
	case KindNoData:
		return ErrNoData
	case KindDecode:
		return ErrDecode
	default:
		return nil
	}
}

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindEncode:
		return "encode"
	case KindTransport:
		return "transport"
	case KindNoData:
		return "no_data"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is returned for every failed request. errors.Is matches it against the
// sentinel of its kind and against its cause.
type Error struct {
	Kind     ErrorKind
	Endpoint Endpoint
	URL      string
	Err      error
}

func newError(kind ErrorKind, ep Endpoint, url string, cause error) *Error {
	return &Error{Kind: kind, Endpoint: ep, URL: url, Err: cause}
}

func (e *Error) Error() string {
	reason := e.Kind.String()
	if s := e.Kind.sentinel(); s != nil {
		reason = s.Error()
	}
	msg := fmt.Sprintf("%s: %s", e.Endpoint.Name(), reason)
	if e.URL != "" {
		msg += fmt.Sprintf(" (%s)", e.URL)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}
