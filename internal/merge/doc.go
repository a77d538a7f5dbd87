// Package merge unions the translated part files of one language into a
// single key/value table and writes it as output/<language>/final.xlsx,
// optionally with CSV and SQLite copies.
//
// Files are read in natural part order (p1, p2, ..., p10, then any other
// names); when two files carry the same key the later file wins. A file
// that cannot be read or decoded is skipped and reported, never fatal.
package merge
