// Package errors provides standardized contract-violation errors for the
// theme tokenizer. Malformed input never produces one of these: they signal
// a bug in a producer, a consumer, or the code wiring them together, and are
// raised with panic.
package errors

import (
	"fmt"
	"runtime"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryCursor   ErrorCategory = "CURSOR"
	CategoryToken    ErrorCategory = "TOKEN"
	CategoryProducer ErrorCategory = "PRODUCER"
	CategoryQueue    ErrorCategory = "QUEUE"
	CategoryRegistry ErrorCategory = "REGISTRY"
)

// Codes used by the constructors below.
const (
	CodeReadPastEnd        = "READ_PAST_END"
	CodeInvalidSubReader   = "INVALID_SUBREADER"
	CodeValueTypeMismatch  = "VALUE_TYPE_MISMATCH"
	CodeNoProgress         = "NO_PROGRESS"
	CodeNotResumable       = "NOT_RESUMABLE"
	CodeIncompleteMidLine  = "INCOMPLETE_MID_LINE"
	CodeCommittedView      = "COMMITTED_VIEW"
	CodeSliceOverrun       = "SLICE_OVERRUN"
	CodeUnregisteredFamily = "UNREGISTERED_FAMILY"
	CodeDuplicateFamily    = "DUPLICATE_FAMILY"
	CodeRegistrySealed     = "REGISTRY_SEALED"
	CodeInvalidVersion     = "INVALID_FAMILY_VERSION"
)

// StandardError provides a consistent error format
type StandardError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Context  map[string]interface{}
	Caller   string
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return fmt.Sprintf("[%s:%s] %s (caller: %s)", e.Category, e.Code, e.Message, e.Caller)
}

// NewStandardError creates a new standardized error
func NewStandardError(category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	// Skip this frame and the constructor that called it.
	pc, _, _, ok := runtime.Caller(2)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// IsContractViolation reports whether a recovered panic value is a
// StandardError and returns it.
func IsContractViolation(recovered interface{}) (*StandardError, bool) {
	se, ok := recovered.(*StandardError)
	return se, ok
}

// Common error constructors

func ReadPastEnd(line, column int) *StandardError {
	return NewStandardError(CategoryCursor, CodeReadPastEnd,
		fmt.Sprintf("read past end of line %d at column %d", line, column),
		map[string]interface{}{"line": line, "column": column})
}

func InvalidSubReader(end, pos, length int) *StandardError {
	return NewStandardError(CategoryCursor, CodeInvalidSubReader,
		fmt.Sprintf("sub-reader end %d outside remaining range [%d, %d]", end, pos, length),
		map[string]interface{}{"end": end, "pos": pos, "length": length})
}

func ValueTypeMismatch(typeID string, value interface{}) *StandardError {
	return NewStandardError(CategoryToken, CodeValueTypeMismatch,
		fmt.Sprintf("token type %q cannot carry value of type %T", typeID, value),
		map[string]interface{}{"type": typeID, "value": value})
}

func NoProgress(producer string, line, column int) *StandardError {
	return NewStandardError(CategoryProducer, CodeNoProgress,
		fmt.Sprintf("producer %q matched at %d:%d but did not advance", producer, line, column),
		map[string]interface{}{"producer": producer, "line": line, "column": column})
}

func NotResumable(producer string) *StandardError {
	return NewStandardError(CategoryProducer, CodeNotResumable,
		fmt.Sprintf("producer %q reported an incomplete construct but cannot resume", producer),
		map[string]interface{}{"producer": producer})
}

func IncompleteMidLine(producer string, line, column int) *StandardError {
	return NewStandardError(CategoryProducer, CodeIncompleteMidLine,
		fmt.Sprintf("producer %q reported an incomplete construct at %d:%d before the end of the line", producer, line, column),
		map[string]interface{}{"producer": producer, "line": line, "column": column})
}

func CommittedView(operation string) *StandardError {
	return NewStandardError(CategoryQueue, CodeCommittedView,
		fmt.Sprintf("%s on a split queue that was already committed", operation),
		map[string]interface{}{"operation": operation})
}

func SliceOverrun(bound int) *StandardError {
	return NewStandardError(CategoryQueue, CodeSliceOverrun,
		fmt.Sprintf("poll past slice boundary (%d tokens)", bound),
		map[string]interface{}{"bound": bound})
}

func UnregisteredFamily(family string) *StandardError {
	return NewStandardError(CategoryRegistry, CodeUnregisteredFamily,
		fmt.Sprintf("tokenizer family %q is not registered", family),
		map[string]interface{}{"family": family})
}

func DuplicateFamily(family string) *StandardError {
	return NewStandardError(CategoryRegistry, CodeDuplicateFamily,
		fmt.Sprintf("tokenizer family %q registered twice", family),
		map[string]interface{}{"family": family})
}

func RegistrySealed(family string) *StandardError {
	return NewStandardError(CategoryRegistry, CodeRegistrySealed,
		fmt.Sprintf("cannot register %q: registry is read-only once parsing has started", family),
		map[string]interface{}{"family": family})
}

func InvalidFamilyVersion(family string, cause error) *StandardError {
	return NewStandardError(CategoryRegistry, CodeInvalidVersion,
		fmt.Sprintf("family %q has an invalid version: %v", family, cause),
		map[string]interface{}{"family": family, "cause": cause})
}
