// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package zetta

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsuccessful matches every response whose envelope did not carry
	// the success marker.
	ErrUnsuccessful = errors.New("zetta: unsuccessful response")

	// ErrClosed is returned for requests on a closed session.
	ErrClosed = errors.New("zetta: session closed")
)

// ResponseTypeError is returned when the envelope's responseType is not "success".
type ResponseTypeError struct {
	Endpoint     string
	ResponseType string
}

func (e *ResponseTypeError) Error() string {
	return fmt.Sprintf("zetta %s: responseType %q, want %q", e.Endpoint, e.ResponseType, "success")
}

// Is makes errors.Is(err, ErrUnsuccessful) true.
func (e *ResponseTypeError) Is(target error) bool {
	return target == ErrUnsuccessful
}

// StatusError is returned for any non-200 HTTP status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("zetta %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}
