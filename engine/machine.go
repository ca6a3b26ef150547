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

// Package engine implements the Enigma M3: three rotors, a reflector and a
// plugboard, with the stepping of the wartime machine including the double
// step of the middle rotor.
package engine

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/permutator"
	"github.com/bgallie/enigma/cryptors/rotor"
	"github.com/bgallie/enigma/filters/letters"
	"golang.org/x/crypto/blake2b"
)

// Machine is an Enigma M3.  rotors[0] is the leftmost (slow) rotor and
// rotors[2] the rightmost (fast) rotor as seen by the operator.
//
// A Machine is not safe for concurrent use.
type Machine struct {
	cfg       Config
	rotors    [cryptors.NumberOfRotors]*rotor.Rotor
	reflector *permutator.Permutator
	plugboard *permutator.Permutator
	counter   cryptors.Counter
	tail      int // Key presses before the stepping sequence enters its cycle.
	cycle     int // Length of that cycle; 0 until it is computed.
}

// New builds a machine from cfg.  No machine is returned if any part of the
// configuration is invalid.
func New(cfg Config) (*Machine, error) {
	var m Machine
	if err := m.Update(cfg); err != nil {
		return nil, err
	}
	return &m, nil
}

// Configure parses s and builds a machine from it.
func Configure(s Settings) (*Machine, error) {
	cfg, err := ParseSettings(s)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// Update replaces the whole configuration of m, returning the rotors to
// the indicator and the letter count to zero.  m is unchanged if cfg is
// invalid.
func (m *Machine) Update(cfg Config) error {
	reflector, err := Reflector(cfg.Reflector)
	if err != nil {
		return err
	}

	var rotors [cryptors.NumberOfRotors]*rotor.Rotor
	for i, name := range cfg.Rotors {
		if rotors[i], err = NewRotor(name); err != nil {
			return err
		}
		cfg.Rotors[i] = rotors[i].Name()
	}

	for i, ring := range cfg.Rings {
		if ring < 1 || ring > cryptors.AlphabetSize {
			return settingError(ErrInvalidRingSetting, strconv.Itoa(ring), "want 1-%d", cryptors.AlphabetSize)
		}
		rotors[i].Update(ring-1, 0)
	}

	plugboard, err := buildPlugboard(cfg.Plugboard)
	if err != nil {
		return err
	}

	for i, pos := range cfg.Indicator {
		if pos < 1 || pos > cryptors.AlphabetSize {
			return settingError(ErrInvalidIndicatorSetting, strconv.Itoa(pos), "want 1-%d", cryptors.AlphabetSize)
		}
		rotors[i].SetPosition(pos - 1)
	}

	cfg.Reflector = strings.ToUpper(strings.TrimSpace(cfg.Reflector))
	cfg.Plugboard = append([]string(nil), cfg.Plugboard...)
	m.cfg = cfg
	m.rotors = rotors
	m.reflector = reflector
	m.plugboard = plugboard
	m.counter.SetIndex(cryptors.BigZero)
	m.tail, m.cycle = 0, 0
	return nil
}

// Config returns a copy of the machine's configuration.
func (m *Machine) Config() Config {
	cfg := m.cfg
	cfg.Plugboard = append([]string(nil), m.cfg.Plugboard...)
	return cfg
}

// Reset returns the rotors to the indicator setting and the letter count to
// zero.
func (m *Machine) Reset() {
	for i, r := range m.rotors {
		r.SetPosition(m.cfg.Indicator[i] - 1)
	}
	m.counter.SetIndex(cryptors.BigZero)
}

// stepRotors advances the rotors for one key press.  The middle rotor steps
// together with the left rotor when it stands at its own notch, which makes
// it step on two key presses in a row (the double step).
func stepRotors(rotors *[cryptors.NumberOfRotors]*rotor.Rotor) {
	if rotors[1].IsAtTurnover() {
		rotors[0].Step()
		rotors[1].Step()
	} else if rotors[2].IsAtTurnover() {
		rotors[1].Step()
	}
	rotors[2].Step()
}

// Encipher enciphers (or deciphers) the upper case letter c and advances
// the rotors.
func (m *Machine) Encipher(c byte) byte {
	stepRotors(&m.rotors)

	n := cryptors.Encode(c)
	n = m.plugboard.Apply(n)
	for i := len(m.rotors) - 1; i >= 0; i-- {
		n = m.rotors[i].Apply(cryptors.Forward, n)
	}
	n = m.reflector.Apply(n)
	for i := 0; i < len(m.rotors); i++ {
		n = m.rotors[i].Apply(cryptors.Reverse, n)
	}
	n = m.plugboard.Apply(n)

	m.counter.Increment()
	return cryptors.Decode(n)
}

// EncipherString enciphers the letters of s.  Lower case letters are folded
// to upper case and everything else is dropped.
func (m *Machine) EncipherString(s string) string {
	text := letters.Filter([]byte(s))
	for i, c := range text {
		text[i] = m.Encipher(c)
	}
	return string(text)
}

// Positions returns the letters shown in the rotor windows.
func (m *Machine) Positions() string {
	var output bytes.Buffer
	for _, r := range m.rotors {
		output.WriteByte(cryptors.Decode(r.Position()))
	}
	return output.String()
}

// Index returns the number of letters enciphered since the indicator
// setting.
func (m *Machine) Index() *big.Int {
	return m.counter.Index()
}

// SetIndex puts the machine into the state it would be in after
// enciphering idx letters from the indicator setting.
func (m *Machine) SetIndex(idx *big.Int) {
	m.Reset()
	if idx.Sign() <= 0 {
		return
	}

	tail, cycle := m.period()
	steps := new(big.Int).Set(idx)
	if t := big.NewInt(int64(tail)); steps.Cmp(t) >= 0 {
		steps.Sub(steps, t)
		steps.Mod(steps, big.NewInt(int64(cycle)))
		steps.Add(steps, t)
	}

	for n := steps.Int64(); n > 0; n-- {
		stepRotors(&m.rotors)
	}
	m.counter.SetIndex(idx)
}

// MaximalStates returns the number of distinct rotor positions the machine
// passes through starting from its indicator setting.  After that many
// letters the positions repeat.
func (m *Machine) MaximalStates() *big.Int {
	tail, cycle := m.period()
	return big.NewInt(int64(tail + cycle))
}

// period finds where the stepping sequence from the indicator setting
// starts to repeat.  There are at most 26^3 rotor states so the search is
// bounded; the result is cached until the next Update.
func (m *Machine) period() (int, int) {
	if m.cycle != 0 {
		return m.tail, m.cycle
	}

	var rotors [cryptors.NumberOfRotors]*rotor.Rotor
	for i, r := range m.rotors {
		rotors[i] = r.Clone()
		rotors[i].SetPosition(m.cfg.Indicator[i] - 1)
	}

	seen := make([]int32, cryptors.AlphabetSize*cryptors.AlphabetSize*cryptors.AlphabetSize)
	for i := range seen {
		seen[i] = -1
	}

	for i := int32(0); ; i++ {
		s := 0
		for _, r := range rotors {
			s = s*cryptors.AlphabetSize + r.Position()
		}
		if seen[s] >= 0 {
			m.tail, m.cycle = int(seen[s]), int(i-seen[s])
			break
		}
		seen[s] = i
		stepRotors(&rotors)
	}

	return m.tail, m.cycle
}

// CounterKey returns a key that identifies the machine configuration, used
// to store letter counts without storing the settings themselves.
func (m *Machine) CounterKey() string {
	sum := blake2b.Sum256([]byte(m.cfg.String()))
	return hex.EncodeToString(sum[:])
}

func (m *Machine) String() string {
	var output bytes.Buffer
	s := m.cfg.Settings()
	output.WriteString(fmt.Sprintf("Reflector:    %s\n", s.Reflector))
	output.WriteString("Rotors:      ")
	for _, r := range m.rotors {
		output.WriteString(fmt.Sprintf(" [%s]", r))
	}
	output.WriteString("\n")
	output.WriteString(fmt.Sprintf("Plugboard:    %s\n", s.Plugboard))
	output.WriteString(fmt.Sprintf("Indicator:    %s\n", s.Indicator))
	output.WriteString(fmt.Sprintf("Positions:    %s\n", m.Positions()))
	output.WriteString(fmt.Sprintf("Index:        %s\n", m.Index()))
	return output.String()
}
