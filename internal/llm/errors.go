package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrProvider matches every failure returned by an LLMClient. Callers
// report it generically and never branch on the underlying cause.
var ErrProvider = errors.New("completion provider error")

// Error codes carried by ProviderError for logging.
const (
	CodeTimeout       = "TIMEOUT"
	CodeUnavailable   = "UNAVAILABLE"
	CodeAuth          = "AUTH"
	CodeInvalidOutput = "INVALID_OUTPUT"
	CodeUnknown       = "UNKNOWN"
)

// ProviderError wraps a failed completion call.
type ProviderError struct {
	Provider Provider
	Code     string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s completion failed (%s): %v", e.Provider, e.Code, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrProvider) true for any ProviderError.
func (e *ProviderError) Is(target error) bool { return target == ErrProvider }

func newProviderError(p Provider, ctx context.Context, err error) *ProviderError {
	return &ProviderError{Provider: p, Code: classify(ctx, err), Err: err}
}

func classify(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, errEmptyCompletion):
		return CodeInvalidOutput
	case errors.Is(err, errMissingAPIKey):
		return CodeAuth
	case ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case isConnectionError(err):
		return CodeUnavailable
	case isAuthError(err):
		return CodeAuth
	default:
		return CodeUnknown
	}
}

// errEmptyCompletion marks a response that decoded but carried no text.
var errEmptyCompletion = errors.New("empty completion")

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func isAuthError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "status code: 401") ||
		strings.Contains(msg, "status 401") ||
		strings.Contains(msg, "invalid_api_key") ||
		strings.Contains(msg, "incorrect api key")
}

// ErrorCode returns the ProviderError code of err, or "" when err is not a
// provider failure.
func ErrorCode(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
