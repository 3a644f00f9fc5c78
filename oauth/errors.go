package oauth

import "errors"

// Kind classifies an authentication failure. Every failed attempt carries
// exactly one Kind so callers can distinguish provider outages from bad
// responses without parsing message text.
type Kind string

const (
	// KindConfiguration indicates missing client credentials or callback URL.
	// No network traffic is generated for these failures.
	KindConfiguration Kind = "configuration"
	// KindProvider indicates a non-OK provider status, a transport failure,
	// or an OAuth error reported by the provider itself.
	KindProvider Kind = "provider"
	// KindMalformedResponse indicates a provider body that is not valid JSON.
	KindMalformedResponse Kind = "malformed_response"
	// KindValidation indicates a response missing a required field, or a
	// state parameter that does not match the state cookie.
	KindValidation Kind = "validation"
	// KindEnricher indicates the profile enricher hook returned an error.
	KindEnricher Kind = "enricher"
)

// Error is a tagged authentication failure.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

// NewError returns a new tagged failure.
func NewError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// WrapError returns a new tagged failure wrapping its cause.
func WrapError(kind Kind, cause error, msg string) *Error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

// Kind returns the failure classification.
func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.kind) + ": " + e.msg + ": " + e.cause.Error()
	}

	return string(e.kind) + ": " + e.msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf reports the Kind of the first tagged failure in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}

	return "", false
}
