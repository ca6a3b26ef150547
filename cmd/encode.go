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
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math/big"

	"github.com/bgallie/enigma/filters/groups"
	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
)

const (
	pemType   = "ENIGMA Enciphered Message"
	headerTag = "+ENIGMA"
)

// armorOptions selects how ciphertext is written.
type armorOptions struct {
	useASCII85  bool
	usePem      bool
	compression bool
	fileName    string
	size        int
	perLine     int
}

/*
	encodeCiphertext copies the ciphertext read from cipherRdr to fout.
	Without an armor the text is written in groups.  The PEM and ascii85
	armors record iCnt, the letter count of the first letter, so the message
	can be deciphered without knowing where the sender's machine stood.
*/
func encodeCiphertext(fout io.Writer, cipherRdr *io.PipeReader, iCnt *big.Int, opts armorOptions) error {
	encIn := cipherRdr
	if opts.compression {
		encIn = flate.ToFlate(cipherRdr)
	}

	var err error
	switch {
	case opts.usePem:
		var blck pem.Block
		blck.Headers = make(map[string]string)
		blck.Type = pemType
		blck.Headers["Counter"] = iCnt.Text(10)
		if len(opts.fileName) > 0 {
			blck.Headers["FileName"] = opts.fileName
		}
		blck.Headers["Compression"] = fmt.Sprintf("%v", opts.compression)
		_, err = io.Copy(fout, pem.ToPem(bufio.NewReader(encIn), blck))
	case opts.useASCII85:
		headerLine := fmt.Sprintf("%s|%s|%v\n", headerTag, iCnt.Text(10), opts.compression)
		if _, err = io.WriteString(fout, headerLine); err != nil {
			return err
		}
		_, err = io.Copy(fout, lines.SplitToLines(ascii85.ToASCII85(encIn)))
	default:
		_, err = io.Copy(fout, groups.ToGroups(encIn, opts.size, opts.perLine))
	}

	return checkError(err)
}
