package letters

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"AAAAA", "AAAAA"},
		{"aaAAaAaAaa", "AAAAAAAAAA"},
		{"A;AA,öäööAA-AAAAA", "AAAAAAAAAA"},
		{"Hello, World! 1945", "HELLOWORLD"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, string(Filter([]byte(tt.in))), tt.in)
	}
}

func TestToLetters(t *testing.T) {
	in := strings.Repeat("abc, def\n", 1000)
	out, err := io.ReadAll(ToLetters(iotest.OneByteReader(strings.NewReader(in))))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ABCDEF", 1000), string(out))
}

func TestToLettersError(t *testing.T) {
	_, err := io.ReadAll(ToLetters(iotest.TimeoutReader(strings.NewReader("abc"))))
	assert.ErrorIs(t, err, iotest.ErrTimeout)
}
