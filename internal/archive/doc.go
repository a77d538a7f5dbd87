// Package archive moves the translated output of a language out of the way
// before a clean run, keeping it under a timestamped directory.
package archive
