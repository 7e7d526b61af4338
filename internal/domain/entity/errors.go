package entity

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrNoMatch signals that a matcher found nothing and the next tier should run.
var ErrNoMatch = errors.New("no matching product")

// DataLoadError the catalog source could not be turned into products
type DataLoadError struct {
	Source string
	Row    int // source row with the header as row 1, 0 when the whole source failed
	Field  string
	Err    error
}

func (e *DataLoadError) Error() string {
	switch {
	case e.Row > 0 && e.Field != "":
		return fmt.Sprintf("load catalog %s: row %d: %s: %v", e.Source, e.Row, e.Field, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("load catalog %s: row %d: %v", e.Source, e.Row, e.Err)
	case e.Field != "":
		return fmt.Sprintf("load catalog %s: column %s: %v", e.Source, e.Field, e.Err)
	default:
		return fmt.Sprintf("load catalog %s: %v", e.Source, e.Err)
	}
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// ErrorKind classification of an assistant failure
type ErrorKind string

const (
	KindNetwork   ErrorKind = "network"
	KindAuth      ErrorKind = "auth"
	KindQuota     ErrorKind = "quota"
	KindMalformed ErrorKind = "malformed"
	KindTimeout   ErrorKind = "timeout"
	KindUnknown   ErrorKind = "unknown"
)

// ExternalServiceError the generative service call failed
type ExternalServiceError struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s %s error: %v", e.Provider, e.Kind, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// TransportKind classifies failures that happen below any provider protocol.
// ok is false when err is not a transport failure.
func TransportKind(err error) (kind ErrorKind, ok bool) {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout, true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout, true
		}
		return KindNetwork, true
	}
	return "", false
}
