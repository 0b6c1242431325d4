package service

import "errors"

// Pipeline failure taxonomy. Handlers map these to HTTP statuses with
// errors.Is; services wrap them with fmt.Errorf("%w: ...") to add detail.
var (
	// ErrInvalidInput marks a caller error: missing or malformed image data,
	// an unknown analysis kind, or a bad hint. Nothing has been attempted yet.
	ErrInvalidInput = errors.New("invalid input")

	// ErrModelRefusal means the model returned no usable candidate text.
	ErrModelRefusal = errors.New("no response content from model")

	// ErrUpstream covers non-2xx statuses and embedded error payloads from
	// the model endpoint.
	ErrUpstream = errors.New("model api error")

	// ErrParse means the candidate text was not valid JSON.
	ErrParse = errors.New("model response is not valid json")

	// ErrInvalidModelOutput means the JSON parsed but failed validation:
	// a health score outside 1..10, a missing amount estimate, and so on.
	ErrInvalidModelOutput = errors.New("model output failed validation")

	// ErrIncompleteBilingual means a required Korean/English field pair came
	// back with one half empty. Treated as a data-quality defect, never
	// patched with a translation.
	ErrIncompleteBilingual = errors.New("incomplete bilingual response")

	// ErrStorage means the image upload to the blob store failed.
	ErrStorage = errors.New("storage upload failed")

	// ErrDatabase means the final record insert failed. A blob may already
	// have been written; orphaned blobs are accepted, not compensated.
	ErrDatabase = errors.New("database insert failed")

	// ErrDraftNotFound means a pending analysis draft expired or never existed.
	ErrDraftNotFound = errors.New("analysis draft not found")
)
