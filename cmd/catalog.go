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
	"fmt"
	"io"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/engine"
	"github.com/spf13/cobra"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"c", "list"},
	Short:   "List the rotors and reflectors the machine can be fitted with",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeCatalog(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func writeCatalog(w io.Writer) error {
	fmt.Fprintln(w, "Rotors:")
	for _, name := range engine.RotorNames() {
		r, err := engine.NewRotor(name)
		if err != nil {
			return err
		}
		var notches []string
		for _, n := range r.Notches() {
			if n != cryptors.NoNotch {
				notches = append(notches, string(cryptors.Decode(n)))
			}
		}
		fmt.Fprintf(w, "  %-5s %s  notch %s\n", name, r.Wiring(), strings.Join(notches, ","))
	}
	fmt.Fprintln(w, "Reflectors:")
	for _, name := range engine.ReflectorNames() {
		p, err := engine.Reflector(name)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "  %-5s %s\n", name, p)
		if err != nil {
			return err
		}
	}
	return nil
}
