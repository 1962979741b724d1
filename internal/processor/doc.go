// Package processor contains the core learning workflow. It orchestrates
// definition and image lookups, tracks the current search result, keeps the
// vocabulary notebook, and drives story generation, speech and batch lookups.
// This package serves as the main coordinator between all other components.
package processor
