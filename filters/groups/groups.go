/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package groups writes a letter stream the way it was sent: in groups of
// a fixed size separated by a space, with a fixed number of groups on each
// line.
package groups

import (
	"bufio"
	"io"
	"strings"

	"github.com/friendsofgo/errors"
)

const (
	DefaultGroupSize     = 5
	DefaultGroupsPerLine = 6
	MaxGroupSize         = 64
	MaxGroupsPerLine     = 64
)

var ErrInvalidGrouping = errors.New("invalid grouping")

// Check validates a group size and a number of groups per line.
func Check(size, perLine int) error {
	if size < 1 || size > MaxGroupSize {
		return errors.Wrapf(ErrInvalidGrouping, "group size %d is not in 1-%d", size, MaxGroupSize)
	}
	if perLine < 1 || perLine > MaxGroupsPerLine {
		return errors.Wrapf(ErrInvalidGrouping, "groups per line %d is not in 1-%d", perLine, MaxGroupsPerLine)
	}
	return nil
}

// grouper tracks where the next letter goes.
type grouper struct {
	w       *bufio.Writer
	size    int
	perLine int
	count   int
}

func (g *grouper) write(p []byte) error {
	for _, c := range p {
		if g.count > 0 && g.count%g.size == 0 {
			sep := byte(' ')
			if (g.count/g.size)%g.perLine == 0 {
				sep = '\n'
			}
			if err := g.w.WriteByte(sep); err != nil {
				return err
			}
		}
		if err := g.w.WriteByte(c); err != nil {
			return err
		}
		g.count++
	}
	return nil
}

// finish ends the last line.
func (g *grouper) finish() error {
	if g.count > 0 {
		if err := g.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return g.w.Flush()
}

// Format returns s in groups of size letters, perLine groups to a line.
// size and perLine must satisfy Check.
func Format(s string, size, perLine int) string {
	var output strings.Builder
	g := grouper{w: bufio.NewWriter(&output), size: size, perLine: perLine}
	_ = g.write([]byte(s))
	_ = g.finish()
	return output.String()
}

// ToGroups returns a reader that yields the data read from rdr in groups.
// size and perLine must satisfy Check.
func ToGroups(rdr io.Reader, size, perLine int) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()

	go func() {
		g := grouper{w: bufio.NewWriter(rWrtr), size: size, perLine: perLine}
		buf := make([]byte, 2048)
		for {
			cnt, err := rdr.Read(buf)
			if werr := g.write(buf[:cnt]); werr != nil {
				rWrtr.CloseWithError(werr)
				return
			}
			if err == io.EOF {
				rWrtr.CloseWithError(g.finish())
				return
			}
			if err != nil {
				rWrtr.CloseWithError(err)
				return
			}
		}
	}()

	return rRdr
}
