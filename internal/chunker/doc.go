// Package chunker splits translation input into numbered part files.
//
// Two modes are supported. The count-based mode cuts an ordered key list
// into parts of a fixed number of keys, each key mapped to an empty
// placeholder. The line-budget mode groups the top-level sections of a
// nested JSON document so that each part stays under a line budget; a
// section is never split, so a section larger than the budget forms a
// part of its own.
//
// Parts are written as parts/<language>/p<N>.json, numbered from 1 without
// gaps, with members in source order.
package chunker
