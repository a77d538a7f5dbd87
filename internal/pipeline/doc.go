// Package pipeline runs the stages of a translation run in order:
// converting the source into parts, translating the parts and merging the
// translations. Each stage reports a Step; a run never aborts on a
// per-file problem and an unexpected panic becomes a failed Result.
package pipeline
