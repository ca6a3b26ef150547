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
	"io"
	"math/big"
	"strings"

	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/friendsofgo/errors"
)

/*
	decodeCiphertext looks at the start of bRdr to find out how the message
	was written.  For a PEM block or an ascii85 message it returns a reader
	of the ciphertext with the armor and any compression removed, and the
	letter count recorded by the sender.  Anything else is returned as is,
	with a nil count.
*/
func decodeCiphertext(bRdr *bufio.Reader) (io.Reader, *big.Int, error) {
	b, err := bRdr.Peek(5)
	if err = checkError(err); err != nil {
		return nil, nil, err
	}

	switch string(b) {
	case "-----":
		pRdr, blck := pem.FromPem(bRdr)
		if blck.Type != pemType {
			notepad.WARN.Printf("Unexpected PEM block type %q\n", blck.Type)
		}
		iCnt, err := parseCounter(blck.Headers["Counter"])
		if err != nil {
			return nil, nil, err
		}
		if blck.Headers["Compression"] == "true" {
			return flate.FromFlate(pRdr), iCnt, nil
		}
		return pRdr, iCnt, nil
	case headerTag[:5]:
		line, err := bRdr.ReadString('\n')
		if err != nil {
			return nil, nil, errors.Wrap(err, "reading the message header")
		}
		fields := strings.Split(strings.TrimRight(line, "\r\n"), "|")
		if len(fields) != 3 || fields[0] != headerTag {
			return nil, nil, errors.Errorf("malformed message header %q", line)
		}
		iCnt, err := parseCounter(fields[1])
		if err != nil {
			return nil, nil, err
		}
		aRdr := ascii85.FromASCII85(lines.CombineLines(bRdr))
		if fields[2] == "true" {
			return flate.FromFlate(aRdr), iCnt, nil
		}
		return aRdr, iCnt, nil
	}

	return bRdr, nil, nil
}

func parseCounter(s string) (*big.Int, error) {
	iCnt, ok := new(big.Int).SetString(s, 10)
	if !ok || iCnt.Sign() < 0 {
		return nil, errors.Errorf("invalid letter count [%s]", s)
	}
	return iCnt, nil
}
