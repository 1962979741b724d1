// Package archive keeps timestamped backup copies of the notebook.
package archive
