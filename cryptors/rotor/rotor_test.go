package rotor

import (
	"testing"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/permutator"
	"github.com/stretchr/testify/assert"
)

func rotorI() *Rotor {
	return New("I", permutator.Must("EKMFLGDQVZNTOWYHXUSPAIBRCJ"), cryptors.Encode('Q'))
}

func TestApply(t *testing.T) {
	r := rotorI()
	assert.Equal(t, cryptors.Encode('E'), r.Apply(cryptors.Forward, 0))

	r.SetPosition(1)
	assert.Equal(t, cryptors.Encode('J'), r.Apply(cryptors.Forward, 0))

	// Turning the ring by one has the opposite effect of turning the rotor.
	r.Update(1, 1)
	assert.Equal(t, cryptors.Encode('E'), r.Apply(cryptors.Forward, 0))
	r.Update(1, 0)
	assert.Equal(t, cryptors.Encode('K'), r.Apply(cryptors.Forward, 0))
}

func TestApplyReverseUndoesForward(t *testing.T) {
	r := rotorI()
	for ring := 0; ring < cryptors.AlphabetSize; ring += 5 {
		for pos := 0; pos < cryptors.AlphabetSize; pos += 3 {
			r.Update(ring, pos)
			for n := 0; n < cryptors.AlphabetSize; n++ {
				assert.Equal(t, n, r.Apply(cryptors.Reverse, r.Apply(cryptors.Forward, n)))
			}
		}
	}
}

func TestTurnover(t *testing.T) {
	r := rotorI()
	r.SetPosition(cryptors.Encode('P'))
	assert.False(t, r.IsAtTurnover())
	r.Step()
	assert.True(t, r.IsAtTurnover())
	r.Step()
	assert.False(t, r.IsAtTurnover())

	r.SetPosition(cryptors.Encode('Z'))
	r.Step()
	assert.Equal(t, 0, r.Position())

	two := New("VI", permutator.Must("JPGVOUMFYQBENHZRDKASXLICTW"), cryptors.Encode('Z'), cryptors.Encode('M'))
	two.SetPosition(cryptors.Encode('M'))
	assert.True(t, two.IsAtTurnover())
	two.SetPosition(cryptors.Encode('Z'))
	assert.True(t, two.IsAtTurnover())
	two.SetPosition(cryptors.Encode('A'))
	assert.False(t, two.IsAtTurnover())
	assert.Equal(t, [2]int{25, 12}, two.Notches())
}

func TestCloneAndString(t *testing.T) {
	r := rotorI()
	r.Update(0, cryptors.Encode('V'))
	c := r.Clone()
	c.Step()
	assert.Equal(t, "I V 01", r.String())
	assert.Equal(t, "I W 01", c.String())
	assert.Equal(t, [2]int{16, cryptors.NoNotch}, r.Notches())
	assert.Equal(t, "EKMFLGDQVZNTOWYHXUSPAIBRCJ", r.Wiring().String())
}
