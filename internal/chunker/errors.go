package chunker

import "errors"

var (
	// ErrInvalidChunkSize is returned when the items-per-part count is not positive
	ErrInvalidChunkSize = errors.New("chunk size must be > 0")
	// ErrInvalidLineBudget is returned when the lines-per-part budget is not positive
	ErrInvalidLineBudget = errors.New("line budget must be > 0")
	// ErrInvalidDocument is returned when a document is not a JSON object
	ErrInvalidDocument = errors.New("invalid JSON document")
)
