// permutator project permutator.go
package permutator

import (
	"bytes"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/bitops"
	"github.com/friendsofgo/errors"
)

// ErrInvalidPermutation is returned when a wiring is not a bijection on the
// alphabet.
var ErrInvalidPermutation = errors.New("invalid permutation")

// Permutator is an immutable substitution on the 26 letter alphabet.  It is
// used for rotor wirings, reflectors and the plugboard.
type Permutator struct {
	image   [cryptors.AlphabetSize]byte // image[n] is where n is sent.
	inverse [cryptors.AlphabetSize]byte
}

// New creates a permutator from the image of 'A' through 'Z' written as 26
// upper case letters, e.g. "EKMFLGDQVZNTOWYHXUSPAIBRCJ".
func New(wiring string) (*Permutator, error) {
	if len(wiring) != cryptors.AlphabetSize {
		return nil, errors.Wrapf(ErrInvalidPermutation, "%q has %d letters, want %d",
			wiring, len(wiring), cryptors.AlphabetSize)
	}

	var p Permutator
	seen := bitops.New(cryptors.AlphabetSize)

	for i := 0; i < cryptors.AlphabetSize; i++ {
		c := wiring[i]
		if !cryptors.IsLetter(c) {
			return nil, errors.Wrapf(ErrInvalidPermutation, "%q contains %q", wiring, c)
		}

		n := cryptors.Encode(c)
		if bitops.TestAndSet(seen, n) {
			return nil, errors.Wrapf(ErrInvalidPermutation, "%q repeats %q", wiring, c)
		}

		p.image[i] = byte(n)
		p.inverse[n] = byte(i)
	}

	return &p, nil
}

// Must is like New but panics on an invalid wiring.  It is meant for the
// built-in tables only.
func Must(wiring string) *Permutator {
	p, err := New(wiring)
	if err != nil {
		panic(err)
	}
	return p
}

// Identity returns the permutator that maps every letter to itself.
func Identity() *Permutator {
	return Must(cryptors.BarePlugboard)
}

// Apply returns the image of n.  n must be in [0, 25].
func (p *Permutator) Apply(n int) int {
	return int(p.image[n])
}

// Inverse returns a new permutator that undoes p.
func (p *Permutator) Inverse() *Permutator {
	return &Permutator{image: p.inverse, inverse: p.image}
}

// IsInvolution reports whether applying p twice is the identity.
func (p *Permutator) IsInvolution() bool {
	return p.image == p.inverse
}

// FixedPoints returns the indices that p maps to themselves.
func (p *Permutator) FixedPoints() []int {
	var fp []int
	for i, v := range p.image {
		if int(v) == i {
			fp = append(fp, i)
		}
	}
	return fp
}

// String returns the wiring in the form accepted by New.
func (p *Permutator) String() string {
	var output bytes.Buffer
	for _, v := range p.image {
		output.WriteByte(cryptors.Decode(int(v)))
	}
	return output.String()
}

