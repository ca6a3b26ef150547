package cryptors

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecode(t *testing.T) {
	for n := 0; n < AlphabetSize; n++ {
		c := Decode(n)
		assert.True(t, IsLetter(c))
		assert.Equal(t, n, Encode(c))
	}
	assert.Equal(t, byte('Q'), ToUpper('q'))
	assert.Equal(t, byte('1'), ToUpper('1'))
	assert.False(t, IsLetter('a'))
}

func TestMod(t *testing.T) {
	assert.Equal(t, 0, Mod(26))
	assert.Equal(t, 25, Mod(-1))
	assert.Equal(t, 1, Mod(-51))
	assert.Equal(t, 3, Mod(3))
}

func TestTables(t *testing.T) {
	for _, w := range append(append([]Wiring{}, Rotors...), Reflectors...) {
		seen := make(map[byte]bool)
		for i := 0; i < len(w.Wiring); i++ {
			seen[w.Wiring[i]] = true
		}
		assert.Len(t, w.Wiring, AlphabetSize, w.Name)
		assert.Len(t, seen, AlphabetSize, w.Name)
	}
}

func TestCounter(t *testing.T) {
	var cntr Counter
	assert.Equal(t, int64(0), cntr.Index().Int64())
	cntr.Increment()
	cntr.Increment()
	assert.Equal(t, int64(2), cntr.Index().Int64())

	idx := big.NewInt(41)
	cntr.SetIndex(idx)
	idx.SetInt64(7)
	cntr.Increment()
	assert.Equal(t, int64(42), cntr.Index().Int64())

	cntr.Index().SetInt64(0)
	assert.Equal(t, int64(42), cntr.Index().Int64())
}
