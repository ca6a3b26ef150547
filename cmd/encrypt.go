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
	"math/big"
	"path/filepath"
	"strings"

	"github.com/bgallie/enigma/engine"
	"github.com/bgallie/enigma/filters/letters"
	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"
)

var (
	useASCII85  bool
	usePem      bool
	compression bool
	resume      bool
	cnt         string
)

// encipherCmd represents the encipher command
var encipherCmd = &cobra.Command{
	Use:     "encipher",
	Aliases: []string{"e", "encrypt"},
	Short:   "Encipher text using the Enigma M3",
	Long: `Encipher the letters of the input and write the ciphertext in groups.
Lower case letters are folded to upper case and everything that is not a
letter is dropped.  With --useASCII85 or --usePem the ciphertext is wrapped in
an armor that records the letter count, so that the message can be deciphered
without knowing how far the machine had already turned.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return encipher(cmd)
	},
}

func init() {
	rootCmd.AddCommand(encipherCmd)
	encipherCmd.Flags().BoolVarP(&useASCII85, "useASCII85", "a", false, "use ASCII85 encoding")
	encipherCmd.Flags().BoolVarP(&usePem, "usePem", "p", false, "use PEM encoding.")
	encipherCmd.Flags().BoolVarP(&compression, "compress", "c", false, "compress the ciphertext (needs --useASCII85 or --usePem)")
	encipherCmd.Flags().StringVarP(&cnt, "count", "n", "", `initial letter count to use.  It can be a number or a
fraction of the machine period, e.g. "1/2".`)
	encipherCmd.Flags().BoolVarP(&resume, "resume", "R", false, "continue from, and save, the letter count of this setting")
}

/*
	initialCount converts the --count argument to a letter count.  It is
	either an integer or a fraction "a/b" of the number of distinct states
	the machine passes through.
*/
func initialCount(m *engine.Machine, cnt string) (*big.Int, error) {
	if len(cnt) == 0 {
		return new(big.Int), nil
	}

	var iCnt *big.Int
	var good bool
	flds := strings.Split(cnt, "/")
	switch len(flds) {
	case 1:
		iCnt, good = new(big.Int).SetString(cnt, 10)
		if !good {
			return nil, errors.Errorf("failed converting the count to a big.Int: [%s]", cnt)
		}
	case 2:
		a, good := new(big.Int).SetString(flds[0], 10)
		if !good {
			return nil, errors.Errorf("failed converting the numerator to a big.Int: [%s]", flds[0])
		}
		b, good := new(big.Int).SetString(flds[1], 10)
		if !good {
			return nil, errors.Errorf("failed converting the denominator to a big.Int: [%s]", flds[1])
		}
		if b.Sign() == 0 {
			return nil, errors.Errorf("the denominator of the count is zero: [%s]", cnt)
		}
		iCnt = new(big.Int).Mul(m.MaximalStates(), a)
		iCnt.Div(iCnt, b)
	default:
		return nil, errors.Errorf("incorrect initial count: [%s]", cnt)
	}

	if iCnt.Sign() < 0 {
		return nil, errors.Errorf("the count must not be negative: [%s]", cnt)
	}
	return iCnt, nil
}

func encipher(cmd *cobra.Command) error {
	if useASCII85 && usePem {
		return errors.New("use only one of --useASCII85 and --usePem")
	}
	if compression && !(useASCII85 || usePem) {
		return errors.New("--compress needs --useASCII85 or --usePem")
	}

	m, err := initEngine()
	if err != nil {
		return err
	}
	iCnt, err := initialCount(m, cnt)
	if err != nil {
		return err
	}

	var store *counterStore
	mKey := m.CounterKey()
	if resume {
		if store, err = openCounterStore(counterFileName); err != nil {
			return err
		}
		if saved, ok := store.Get(mKey); ok {
			if cnt != "" {
				notepad.WARN.Println("Ignoring the letter count argument - using the saved count.")
			}
			iCnt = saved
		}
	}
	m.SetIndex(iCnt)

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

	opts := armorOptions{
		useASCII85:  useASCII85,
		usePem:      usePem,
		compression: compression,
		size:        size,
		perLine:     perLine,
	}
	if inputFileName != "-" {
		opts.fileName = filepath.Base(inputFileName)
	}

	start := m.Index()
	if err := encodeCiphertext(fout, m.Reader(letters.ToLetters(fin)), start, opts); err != nil {
		return err
	}
	notepad.INFO.Printf("Enciphered %s letters, rotors at %s\n",
		new(big.Int).Sub(m.Index(), start), m.Positions())

	if store != nil {
		store.Set(mKey, m.Index())
		return store.Save()
	}
	return nil
}
