package groups

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/friendsofgo/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in            string
		size, perLine int
		want          string
	}{
		{"", 5, 6, ""},
		{"BDZGO", 5, 6, "BDZGO\n"},
		{"BDZGOWCXLT", 5, 6, "BDZGO WCXLT\n"},
		{"BDZGOWCXLT", 3, 3, "BDZ GOW CXL\nT\n"},
		{"BDZGOWCXL", 3, 3, "BDZ GOW CXL\n"},
		{"ABCDEF", 1, 2, "A B\nC D\nE F\n"},
		{strings.Repeat("AB", 11), 2, 10, strings.Repeat("AB ", 9) + "AB\nAB\n"},
		{strings.Repeat("A", 35), 5, 6, strings.Repeat("AAAAA ", 5) + "AAAAA\nAAAAA\n"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in, tt.size, tt.perLine), "%q %d %d", tt.in, tt.size, tt.perLine)
	}
}

func TestToGroupsMatchesFormat(t *testing.T) {
	in := strings.Repeat("ABCDEFGHIJKLM", 97)
	out, err := io.ReadAll(ToGroups(iotest.HalfReader(strings.NewReader(in)), 7, 4))
	require.NoError(t, err)
	assert.Equal(t, Format(in, 7, 4), string(out))
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(DefaultGroupSize, DefaultGroupsPerLine))
	assert.NoError(t, Check(MaxGroupSize, MaxGroupsPerLine))
	for _, v := range [][2]int{{0, 6}, {5, 0}, {65, 6}, {5, 65}, {-1, -1}} {
		err := Check(v[0], v[1])
		require.Error(t, err, "%v", v)
		assert.Equal(t, ErrInvalidGrouping, errors.Cause(err))
	}
}
