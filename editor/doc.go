// Package editor provides a Bubble Tea rich-text editor component backed by
// the buffer package, with an @mention suggestion dropdown.
//
// The package is responsible for input handling, viewport behavior, styled
// rendering, mention detection and confirmation, and host integration through
// a controlled HTML value and change events.
package editor
