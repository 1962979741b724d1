// Package audio decodes the raw PCM returned by the speech service and plays
// it through an external audio program. The Speaker and Control types
// implement the user-facing "play" behaviour: failures become a single
// notification and a control ignores presses while it is busy.
package audio
