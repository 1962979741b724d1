// Package anki exports notebook entries as Anki flashcards, either as a CSV
// file for manual import or as a complete .apkg package with embedded images.
package anki
