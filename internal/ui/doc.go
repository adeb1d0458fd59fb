// Package ui provides semantic text formatting for lockbox CLI output.
//
// Formatters carry meaning (Success, Error, Warning, Info, Code, Path,
// Highlight) rather than raw colors, and degrade to plain-text decorations
// when color is disabled via NO_COLOR or terminal detection.
//
// The package also owns MaskSecret, the display masking applied to credential
// values by `lockbox view`.
package ui
