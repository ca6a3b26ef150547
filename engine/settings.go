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
	"fmt"
	"sort"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/bitops"
	"github.com/bgallie/enigma/cryptors/permutator"
)

// Settings holds the machine settings as an operator writes them, e.g.
//
//	Settings{"UKW-C", "II IV I", "6 17 26", "AC LS BQ WN MY UV FJ PZ TR OK", "HAG"}
type Settings struct {
	Reflector   string // Umkehrwalze
	Rotors      string // Walzenlage, left to right
	RingSetting string // Ringstellung
	Plugboard   string // Steckerverbindungen
	Indicator   string // Grundstellung
}

// DefaultSettings returns the settings used when none are given.
func DefaultSettings() Settings {
	return Settings{
		Reflector:   "UKW-B",
		Rotors:      "I II III",
		RingSetting: "1 1 1",
		Plugboard:   "",
		Indicator:   "1 1 1",
	}
}

// Config is a parsed machine configuration.  Rings and Indicator hold
// values 1 - 26 with 'A' = 1.
type Config struct {
	Reflector string
	Rotors    [cryptors.NumberOfRotors]string
	Rings     [cryptors.NumberOfRotors]int
	Plugboard []string
	Indicator [cryptors.NumberOfRotors]int
}

// Settings returns the canonical settings strings for c.
func (c Config) Settings() Settings {
	var ring, indicator []string
	for i := 0; i < cryptors.NumberOfRotors; i++ {
		ring = append(ring, fmt.Sprintf("%d", c.Rings[i]))
		indicator = append(indicator, string(cryptors.Decode(c.Indicator[i]-1)))
	}
	// A cable wires both ways, so each pair is written in letter order and
	// the pairs are sorted.
	plugs := make([]string, len(c.Plugboard))
	for i, p := range c.Plugboard {
		p = strings.ToUpper(p)
		if len(p) == 2 && p[0] > p[1] {
			p = string([]byte{p[1], p[0]})
		}
		plugs[i] = p
	}
	sort.Strings(plugs)
	return Settings{
		Reflector:   strings.ToUpper(c.Reflector),
		Rotors:      strings.ToUpper(strings.Join(c.Rotors[:], " ")),
		RingSetting: strings.Join(ring, " "),
		Plugboard:   strings.Join(plugs, " "),
		Indicator:   strings.Join(indicator, ""),
	}
}

// String returns a canonical single line form of c.
func (c Config) String() string {
	s := c.Settings()
	return strings.Join([]string{s.Reflector, s.Rotors, s.RingSetting, s.Plugboard, s.Indicator}, "|")
}

// ParseSettings converts settings strings into a Config.  The settings are
// checked in the order they are made on the machine: reflector, rotors,
// rings, plugboard, indicator; the first bad one is reported.
func ParseSettings(s Settings) (Config, error) {
	var cfg Config
	var err error

	cfg.Reflector = strings.TrimSpace(s.Reflector)
	if _, err = Reflector(cfg.Reflector); err != nil {
		return Config{}, err
	}
	if cfg.Rotors, err = ParseRotors(s.Rotors); err != nil {
		return Config{}, err
	}
	for _, name := range cfg.Rotors {
		if _, err = NewRotor(name); err != nil {
			return Config{}, err
		}
	}
	if cfg.Rings, err = ParseRingSetting(s.RingSetting); err != nil {
		return Config{}, err
	}
	cfg.Plugboard = ParsePlugboard(s.Plugboard)
	if _, err = buildPlugboard(cfg.Plugboard); err != nil {
		return Config{}, err
	}
	if cfg.Indicator, err = ParseIndicator(s.Indicator); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseRotors splits a rotor order such as "II IV I" into exactly three
// names.
func ParseRotors(s string) ([cryptors.NumberOfRotors]string, error) {
	var names [cryptors.NumberOfRotors]string
	fields := strings.Fields(s)
	if len(fields) != cryptors.NumberOfRotors {
		return names, settingError(ErrUnknownRotor, s, "want %d rotors, got %d", cryptors.NumberOfRotors, len(fields))
	}
	for i, f := range fields {
		names[i] = strings.ToUpper(f)
	}
	return names, nil
}

// ParseRingSetting parses a ring setting such as "6 17 26" or "FQZ".
func ParseRingSetting(s string) ([cryptors.NumberOfRotors]int, error) {
	return parseTriple(s, ErrInvalidRingSetting)
}

// ParseIndicator parses an indicator setting such as "HAG" or "8 1 7".
func ParseIndicator(s string) ([cryptors.NumberOfRotors]int, error) {
	return parseTriple(s, ErrInvalidIndicatorSetting)
}

// ParsePlugboard splits a plugboard setting such as "AC LS BQ" into its
// pairs.  The pairs are validated when the plugboard is built.
func ParsePlugboard(s string) []string {
	return strings.Fields(s)
}

// parseTriple reads three values, each either a number 1 - 26 that does
// not start with '0' or a single letter.  Values may be separated by white
// space or written together ("HAG").
func parseTriple(s string, kind error) ([cryptors.NumberOfRotors]int, error) {
	var v [cryptors.NumberOfRotors]int
	rest := s

	for i := range v {
		rest = strings.TrimSpace(rest)
		n, l := lexNumeric(rest)
		if l == 0 {
			n, l = lexLetter(rest)
		}
		if l == 0 {
			return v, settingError(kind, s, "want %d numbers 1-26 or letters A-Z", cryptors.NumberOfRotors)
		}
		v[i] = n
		rest = rest[l:]
	}

	if strings.TrimSpace(rest) != "" {
		return v, settingError(kind, s, "unexpected %q after %d values", strings.TrimSpace(rest), cryptors.NumberOfRotors)
	}
	return v, nil
}

// lexNumeric returns the value and length of a leading number 1 - 26.
func lexNumeric(s string) (int, int) {
	if s == "" || s[0] < '1' || s[0] > '9' {
		return 0, 0
	}
	value, l := 0, 0
	for l < len(s) && s[l] >= '0' && s[l] <= '9' {
		value = value*10 + int(s[l]-'0')
		if value > cryptors.AlphabetSize {
			return 0, 0
		}
		l++
	}
	return value, l
}

// lexLetter returns the value ('A' = 1) of a leading letter.
func lexLetter(s string) (int, int) {
	if s == "" {
		return 0, 0
	}
	c := cryptors.ToUpper(s[0])
	if !cryptors.IsLetter(c) {
		return 0, 0
	}
	return cryptors.Encode(c) + 1, 1
}

// buildPlugboard wires the plugboard from letter pairs.  Each letter may be
// used by one pair only, so the result is an involution.
func buildPlugboard(pairs []string) (*permutator.Permutator, error) {
	wiring := []byte(cryptors.BarePlugboard)
	used := bitops.New(cryptors.AlphabetSize)

	for _, pair := range pairs {
		if len(pair) != 2 {
			return nil, settingError(ErrInvalidPlugboardPair, pair, "want two letters, as in \"ab cd ef\"")
		}

		c0 := cryptors.ToUpper(pair[0])
		c1 := cryptors.ToUpper(pair[1])
		if c0 == c1 {
			return nil, settingError(ErrInvalidPlugboardPair, pair, "a letter can not be swapped with itself")
		}
		for _, c := range []byte{c0, c1} {
			if !cryptors.IsLetter(c) {
				return nil, settingError(ErrInvalidPlugboardPair, pair, "%q is not in the Enigma alphabet", c)
			}
		}

		n0, n1 := cryptors.Encode(c0), cryptors.Encode(c1)
		if bitops.TestAndSet(used, n0) {
			return nil, settingError(ErrInvalidPlugboardPair, pair, "%q has already been used", c0)
		}
		if bitops.TestAndSet(used, n1) {
			return nil, settingError(ErrInvalidPlugboardPair, pair, "%q has already been used", c1)
		}

		wiring[n0], wiring[n1] = c1, c0
	}

	return permutator.New(string(wiring))
}
