// Package status inspects the workspace of one language and reports how far
// the pipeline got: source present, parts converted, parts translated and
// the final workbook merged. It never modifies files.
package status
