package server

import (
	"fmt"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// RequestLogger implements core.Logger by tagging each message with the request it belongs to
type RequestLogger struct {
	requestID string
	base      core.Logger
}

// NewRequestLogger creates a logger for a single request
func NewRequestLogger(requestID string, base core.Logger) core.Logger {
	return &RequestLogger{
		requestID: requestID,
		base:      base,
	}
}

// Printf implements core.Logger interface
func (rl *RequestLogger) Printf(format string, args ...interface{}) {
	rl.base.Printf("[%s] %s", rl.requestID, fmt.Sprintf(format, args...))
}
