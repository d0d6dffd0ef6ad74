// Package conv provides checked integer conversions for the fixed-width
// fields of blob frame headers.
package conv
