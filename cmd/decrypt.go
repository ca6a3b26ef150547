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

	"github.com/bgallie/enigma/engine"
	"github.com/bgallie/enigma/filters/groups"
	"github.com/bgallie/enigma/filters/letters"
	"github.com/spf13/cobra"
)

// decipherCmd represents the decipher command
var decipherCmd = &cobra.Command{
	Use:     "decipher",
	Aliases: []string{"d", "decrypt"},
	Short:   "Decipher text enciphered by the Enigma M3",
	Long: `Decipher the ciphertext on the input.  PEM and ascii85 messages written
by encipher are recognized and the letter count they carry is used.  Plain
ciphertext is enciphered again, which restores the plain text because the
machine is reciprocal.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return decipher(cmd)
	},
}

func init() {
	rootCmd.AddCommand(decipherCmd)
	decipherCmd.Flags().StringVarP(&cnt, "count", "n", "", `initial letter count of plain ciphertext.  It can be a
number or a fraction of the machine period, e.g. "1/2".`)
}

func decipher(cmd *cobra.Command) error {
	m, err := initEngine()
	if err != nil {
		return err
	}
	iCnt, err := initialCount(m, cnt)
	if err != nil {
		return err
	}

	fin, fout, err := getInputAndOutputFiles(cmd)
	if err != nil {
		return err
	}
	defer fin.Close()
	defer fout.Close()

	size, perLine, err := outputGrouping(cmd, fout)
	if err != nil {
		return err
	}

	return decipherStream(m, fin, fout, iCnt, size, perLine)
}

// decipherStream deciphers the message read from fin and writes the plain
// text to fout in groups.  iCnt is used when the message carries no count.
func decipherStream(m *engine.Machine, fin io.Reader, fout io.Writer, iCnt *big.Int, size, perLine int) error {
	src, armorCnt, err := decodeCiphertext(bufio.NewReader(fin))
	if err != nil {
		return err
	}
	if armorCnt != nil {
		if iCnt.Sign() != 0 {
			notepad.WARN.Println("Ignoring the letter count argument - using the count from the message.")
		}
		iCnt = armorCnt
	}
	m.SetIndex(iCnt)

	start := m.Index()
	_, err = io.Copy(fout, groups.ToGroups(m.Reader(letters.ToLetters(src)), size, perLine))
	if err = checkError(err); err != nil {
		return err
	}
	notepad.INFO.Printf("Deciphered %s letters, rotors at %s\n",
		new(big.Int).Sub(m.Index(), start), m.Positions())
	return nil
}
