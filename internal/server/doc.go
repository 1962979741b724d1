// Package server exposes the learning workflow as a JSON HTTP API built on
// gin. Every endpoint delegates to a processor.Processor.
package server
