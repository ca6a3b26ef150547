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
package engine

import (
	"io"

	"github.com/bgallie/enigma/cryptors"
)

// Reader returns a reader that yields the encipherment of the letters read
// from rdr.  Only the bytes 'A' - 'Z' are enciphered; anything else is
// dropped, so rdr is normally the output of letters.ToLetters.
//
// The machine is advanced by a goroutine that owns it until the returned
// reader reaches EOF; it must not be used by anything else meanwhile.
func (m *Machine) Reader(rdr io.Reader) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()

	go func() {
		buf := make([]byte, 2048)
		for {
			cnt, err := rdr.Read(buf)
			if cnt > 0 {
				out := buf[:0]
				for _, c := range buf[:cnt] {
					if cryptors.IsLetter(c) {
						out = append(out, m.Encipher(c))
					}
				}
				if len(out) > 0 {
					if _, werr := rWrtr.Write(out); werr != nil {
						rWrtr.CloseWithError(werr)
						return
					}
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
