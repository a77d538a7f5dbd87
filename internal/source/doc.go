// Package source reads the ordered key list that feeds the chunker from
// a spreadsheet, CSV or plain text file.
package source
