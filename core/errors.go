package core

import "fmt"

// TransportError reports a failed network exchange with a remote collaborator.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// ResponseFormatError reports a response body that could not be parsed as JSON.
type ResponseFormatError struct {
	Err error
}

func (e *ResponseFormatError) Error() string { return fmt.Sprintf("response format: %v", e.Err) }
func (e *ResponseFormatError) Unwrap() error { return e.Err }

// AuthExchangeError reports a rejected authorization-code exchange.
type AuthExchangeError struct {
	Err error
}

func (e *AuthExchangeError) Error() string { return fmt.Sprintf("auth exchange: %v", e.Err) }
func (e *AuthExchangeError) Unwrap() error { return e.Err }

// UploadError reports a failure at any stage of the two-step Drive upload.
// Stage names the step that failed; an already-succeeded first upload is
// never rolled back.
type UploadError struct {
	Stage string
	Err   error
}

func (e *UploadError) Error() string { return fmt.Sprintf("upload %s: %v", e.Stage, e.Err) }
func (e *UploadError) Unwrap() error { return e.Err }
