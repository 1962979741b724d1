// Package models provides functionality for listing and categorizing the
// models available to the configured content provider. It helps users
// discover which text, image generation and speech models their API key
// can reach.
package models
