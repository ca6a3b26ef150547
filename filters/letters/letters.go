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

// Package letters reduces text to the Enigma alphabet: lower case letters
// are folded to upper case and every other byte is dropped.
package letters

import (
	"io"

	"github.com/bgallie/enigma/cryptors"
)

// Filter folds p to upper case and drops every byte that is not a letter.
// The result shares p's storage.
func Filter(p []byte) []byte {
	out := p[:0]
	for _, c := range p {
		c = cryptors.ToUpper(c)
		if cryptors.IsLetter(c) {
			out = append(out, c)
		}
	}
	return out
}

// ToLetters returns a reader that yields the letters of rdr in upper case.
func ToLetters(rdr io.Reader) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()

	go func() {
		buf := make([]byte, 2048)
		for {
			cnt, err := rdr.Read(buf)
			if out := Filter(buf[:cnt]); len(out) > 0 {
				if _, werr := rWrtr.Write(out); werr != nil {
					rWrtr.CloseWithError(werr)
					return
				}
			}
			if err == io.EOF {
				rWrtr.Close()
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
