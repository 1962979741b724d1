// Package study provides the flashcard view over saved notebook entries: a
// cyclic deck cursor with per-card flip state and plain text renderers for
// both card sides.
package study
