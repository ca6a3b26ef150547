// cyptor
package cryptors

import (
	"math/big"
)

const (
	AlphabetSize   = 26
	NumberOfRotors = 3
	// NoNotch marks the missing second notch of rotors I through V.
	NoNotch = -1
)

// Direction selects which of a rotor's two wirings a signal passes through.
type Direction int

const (
	Forward Direction = iota // Entry wheel towards the reflector.
	Reverse                  // Reflector back towards the entry wheel.
)

// Wiring describes one entry of the rotor or reflector catalog.  Wiring is
// the image of the letters A through Z in alphabetical order and Notches
// holds the window letters at which the rotor carries its left neighbour.
type Wiring struct {
	Name    string
	Wiring  string
	Notches string
}

var (
	// Rotors are the eight rotors issued with the M3.  I through V were used
	// by all branches of the Wehrmacht, VI through VIII only by the
	// Kriegsmarine; those three have two notches.
	Rotors = []Wiring{
		{"I", "EKMFLGDQVZNTOWYHXUSPAIBRCJ", "Q"},
		{"II", "AJDKSIRUXBLHWTMCQGZNPYFVOE", "E"},
		{"III", "BDFHJLCPRTXVZNYEIWGAKMUSQO", "V"},
		{"IV", "ESOVPZJAYQUIRHXLNFTGKDCMWB", "J"},
		{"V", "VZBRGITYUPSDNHLXAWMJQOFECK", "Z"},
		{"VI", "JPGVOUMFYQBENHZRDKASXLICTW", "ZM"},
		{"VII", "NZJHGRCXMYSWBOUFAIVLPEKQDT", "ZM"},
		{"VIII", "FKQHTLXOCBJSPDZRAMEWNIUYGV", "ZM"},
	}

	// Reflectors (Umkehrwalzen).  The M3 was normally fitted with UKW-B or
	// UKW-C.
	Reflectors = []Wiring{
		{"UKW-A", "EJMZALYXVBWFCRQUONTSPIKHGD", ""},
		{"UKW-B", "YRUHQSLDPXNGOKMIEBFZCWVJAT", ""},
		{"UKW-C", "FVPJIAOYEDRZXWGCTKUQSBNMHL", ""},
	}

	// BarePlugboard is the plugboard with no cables connected.
	BarePlugboard = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// Define big ints zero and one.
	BigZero = big.NewInt(0)
	BigOne  = big.NewInt(1)
)

// Encode maps the letters 'A' - 'Z' to 0 - 25.
func Encode(c byte) int {
	return int(c - 'A')
}

// Decode maps 0 - 25 to the letters 'A' - 'Z'.
func Decode(n int) byte {
	return byte(n) + 'A'
}

// IsLetter reports whether c is in the Enigma alphabet.
func IsLetter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// ToUpper folds 'a' - 'z' to upper case and leaves every other byte alone.
func ToUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Mod reduces n into the range [0, AlphabetSize).
func Mod(n int) int {
	n %= AlphabetSize
	if n < 0 {
		n += AlphabetSize
	}
	return n
}

// Counter counts the letters processed by a machine.
type Counter struct {
	index *big.Int
}

func (cntr *Counter) SetIndex(index *big.Int) {
	cntr.index = new(big.Int).Set(index)
}

// Index returns a copy of the current count.
func (cntr *Counter) Index() *big.Int {
	if cntr.index == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(cntr.index)
}

func (cntr *Counter) Increment() {
	if cntr.index == nil {
		cntr.index = new(big.Int)
	}
	cntr.index.Add(cntr.index, BigOne)
}
