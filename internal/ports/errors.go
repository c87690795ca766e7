package ports

import "fmt"

// InputValidationError — a required request field is missing.
type InputValidationError struct {
	Field string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// StoreError — object store download/upload/sign failure.
type StoreError struct {
	Op  string // "download", "upload", "sign"
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// TranscodeError — external encoder exited with an error.
// Stderr carries the encoder's own diagnostics.
type TranscodeError struct {
	Stderr string
	Err    error
}

func (e *TranscodeError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("transcode: %v: %s", e.Err, e.Stderr)
	}
	return fmt.Sprintf("transcode: %v", e.Err)
}

func (e *TranscodeError) Unwrap() error { return e.Err }

// TranscriptionError — the speech recognition call itself failed.
// An empty-but-successful recognition is not an error.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// GenerationError — the image generation call failed.
// PolicyViolation marks a content-policy rejection, which is not retryable.
type GenerationError struct {
	PolicyViolation bool
	Err             error
}

func (e *GenerationError) Error() string {
	if e.PolicyViolation {
		return fmt.Sprintf("image generation rejected by content policy: %v", e.Err)
	}
	return fmt.Sprintf("image generation: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
