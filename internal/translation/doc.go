// Package translation sends part files to a language model and writes the
// cleaned responses back to the workspace.
//
// Two providers implement Client: GeminiClient (the default) and
// OpenAIClient. NewClient wraps the selected provider in a Breaker so a
// service that keeps failing is no longer called for the rest of a run.
// Fallback turns every failure into the untranslated text, which lets a
// batch always finish; FileTranslator applies it to parts/<language>/*.json
// and writes output/<language>/*.json atomically.
package translation
