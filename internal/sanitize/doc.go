// Package sanitize recovers a JSON object from free-form model output that
// may be wrapped in markdown fences or surrounded by commentary. It is a
// text transform, not a parser: the result is not guaranteed to be valid
// JSON and callers must tolerate a later parse failure.
package sanitize
