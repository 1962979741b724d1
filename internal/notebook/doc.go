// Package notebook holds the learner's saved vocabulary entries. The store
// keeps entries newest first and writes the full collection to a single
// named slot after every change. Slots exist for plain JSON files, SQLite
// databases and memory.
package notebook
