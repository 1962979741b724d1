// Package language defines the closed set of languages poplingo can study
// and translate between, together with their BCP-47 locale codes.
package language
