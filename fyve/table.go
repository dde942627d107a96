// Package fyve implements the SHDP character alphabet: a variable-length
// 5-bit-per-chunk code, built from chains of "fyves" (5-bit symbols)
// separated by the continuation sentinel 0b11111, plus a small set of
// 5-bit "system" operation codes used to drive the HTML tree codec in
// package events/v1.
//
// The 95-entry code table below (four length strata: 5, 10, 15 and 20
// bits) is fixed by the wire format and generated once at package init
// as a pair of immutable lookup maps.
package fyve

// System is the reserved 5-bit value that introduces an operation code
// rather than a character chain.
const System uint32 = 0b00000

// Continuation is the reserved 5-bit value that, when seen as a chunk
// within a character chain, signals that another 5-bit chunk follows.
// It never appears as a self-contained character.
const Continuation uint32 = 0b11111

// maxChainChunks bounds a character chain at four 5-bit chunks (20
// bits): the first chunk plus at most three continuations.
const maxChainChunks = 4

// codeToChar maps a fully-assembled fyve code (5, 10, 15 or 20 bits) to
// its character. Built once at init from the four length strata.
var codeToChar = map[uint32]rune{}

// charToCode is the inverse of codeToChar, used by the encoder.
var charToCode = map[rune]uint32{}

func register(code uint32, ch rune) {
	codeToChar[code] = ch
	charToCode[ch] = code
}

func init() {
	// Stratum 1: 5-bit codes 1..30.
	stratum1 := []rune{
		' ', 't', 'a', 'e', 'i', 'n', 'o', 'r', 's', 'd',
		'l', '-', '"', 'c', 'p', 'f', '>', '=', '.', 'v',
		'<', 'u', 'm', ';', 'g', ':', '/', 'h', 'y', 'x',
	}
	for i, ch := range stratum1 {
		register(uint32(i+1), ch)
	}

	// Stratum 2: 10-bit codes 993..1022 (high 5 bits = Continuation).
	stratum2 := []rune{
		'b', 'k', ')', '(', 'w', 'E', '#', '}', '{', '0',
		'N', 'A', '2', 'R', '1', 'T', 'D', 'O', 'I', 'S',
		'_', 'P', 'L', '6', '4', ',', 'z', 'M', 'C', 'B',
	}
	for i, ch := range stratum2 {
		register(993+uint32(i), ch)
	}

	// Stratum 3: 15-bit codes 32737..32766.
	stratum3 := []rune{
		'G', '%', 'j', '3', 'U', '8', '*', '5', '9', '+',
		'F', '|', 'W', 'V', '@', 'q', '\'', 'Q', 'H', '!',
		']', '[', '7', 'Z', 'Y', 'X', 'J', '^', 'K', '?',
	}
	for i, ch := range stratum3 {
		register(32737+uint32(i), ch)
	}

	// Stratum 4: 20-bit codes 1048545..1048549.
	stratum4 := []rune{'$', '\\', '~', '`', '&'}
	for i, ch := range stratum4 {
		register(1048545+uint32(i), ch)
	}
}

// Lookup returns the character for a fully-assembled code, and whether
// it was found. System (0) and Continuation (31) are never present.
func Lookup(code uint32) (rune, bool) {
	ch, ok := codeToChar[code]
	return ch, ok
}

// CodeOf returns the fyve code for ch, and whether it is representable
// in this alphabet.
func CodeOf(ch rune) (uint32, bool) {
	code, ok := charToCode[ch]
	return code, ok
}
