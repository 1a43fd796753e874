package parsing

import "fmt"

// EmptyInputError indicates the resume text was too short to extract from.
// The model collaborator is never invoked in this case.
type EmptyInputError struct {
	Length int
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("resume text too short for extraction: %d meaningful characters", e.Length)
}

// ModelCallError represents a failure to complete the model call.
type ModelCallError struct {
	Message string
	Cause   error
}

func (e *ModelCallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("model call failed: %s", e.Message)
}

func (e *ModelCallError) Unwrap() error {
	return e.Cause
}

// ResponseParseError represents a model response that could not be parsed
// as the expected JSON object after stripping markdown fences.
type ResponseParseError struct {
	Message string
	Cause   error
}

func (e *ResponseParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed model response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed model response: %s", e.Message)
}

func (e *ResponseParseError) Unwrap() error {
	return e.Cause
}
