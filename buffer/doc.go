// Package buffer implements the pure, rune-accurate rich-text document model
// behind the mentionpad editor.
//
// Coordinates are 0-based (Row, Col) in runes.
// Ranges are half-open selections in document coordinates: [Start, End).
// Flat offsets count every rune plus one per line break, so offset N is the
// N-th rune of Text().
package buffer
