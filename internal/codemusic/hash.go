package codemusic

import "unicode/utf16"

// Hash is the 31-multiplier string hash used to pick notes and seeds.
// It walks UTF-16 code units, wraps like 32-bit signed arithmetic and
// returns the absolute value. Changing it changes every generated piece.
func Hash(input string) int64 {
	var acc int32
	for _, unit := range utf16.Encode([]rune(input)) {
		acc = (acc << 5) - acc + int32(unit)
	}
	h := int64(acc)
	if h < 0 {
		h = -h
	}
	return h
}

// HashWithVariation offsets the hash of input by variation.
func HashWithVariation(input string, variation int) int64 {
	return Hash(input) + int64(variation)
}

// Index maps input onto [0, n) deterministically.
func Index(input string, variation, n int) int {
	if n <= 0 {
		return 0
	}
	idx := HashWithVariation(input, variation) % int64(n)
	if idx < 0 {
		idx += int64(n)
	}
	return int(idx)
}
