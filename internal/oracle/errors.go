package oracle

import (
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

// Class partitions oracle failures for retry decisions.
type Class int

const (
	// ClassTransient errors (rate limits, quota) are retried with backoff.
	ClassTransient Class = iota
	// ClassFatal errors (auth, billing, config) propagate immediately.
	ClassFatal
	// ClassParse errors (malformed structured response) are recovered as
	// "no data extracted" by the caller.
	ClassParse
)

func (c Class) String() string {
	switch c {
	case ClassTransient:
		return "transient"
	case ClassFatal:
		return "fatal"
	case ClassParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error is an oracle failure tagged with its class.
type Error struct {
	Class Class
	Op    string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("oracle %s (%s): %v", e.Op, e.Class, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewParseError tags a malformed-response failure.
func NewParseError(op string, err error) *Error {
	return &Error{Class: ClassParse, Op: op, Err: err}
}

// Classify maps a provider failure to a retry class. Unknown errors are
// treated as transient so a flaky network does not abort a unit of work
// before the retry budget is spent.
func Classify(err error) Class {
	if err == nil {
		return ClassTransient
	}

	var oerr *Error
	if errors.As(err, &oerr) {
		return oerr.Class
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return classifyStatus(gerr.Code)
	}

	var aerr *openai.APIError
	if errors.As(err, &aerr) {
		return classifyStatus(aerr.HTTPStatusCode)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "429"):
		return ClassTransient
	case strings.Contains(msg, "billing") ||
		strings.Contains(msg, "authentication") ||
		strings.Contains(msg, "permission") ||
		strings.Contains(msg, "api key"):
		return ClassFatal
	}
	return ClassTransient
}

func classifyStatus(code int) Class {
	switch code {
	case 401, 402, 403:
		return ClassFatal
	case 429:
		return ClassTransient
	default:
		if code >= 500 {
			return ClassTransient
		}
		return ClassFatal
	}
}
