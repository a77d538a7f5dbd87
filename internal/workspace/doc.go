// Package workspace defines the on-disk layout shared by the pipeline
// stages (source, parts, output and archive directories) and the file
// helpers they use to enumerate and atomically write part files.
package workspace
