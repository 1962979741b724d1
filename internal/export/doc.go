// Package export writes the vocabulary notebook to an Excel workbook and
// imports entries back from one.
package export
