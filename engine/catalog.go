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
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/permutator"
	"github.com/bgallie/enigma/cryptors/rotor"
)

type rotorTemplate struct {
	wiring  *permutator.Permutator
	notches []int
}

// The catalog is built once from the cryptors tables and never modified.
// Permutators are immutable, so every machine shares them.
var (
	rotorCatalog     = make(map[string]rotorTemplate, len(cryptors.Rotors))
	reflectorCatalog = make(map[string]*permutator.Permutator, len(cryptors.Reflectors))
)

func init() {
	for _, w := range cryptors.Rotors {
		t := rotorTemplate{wiring: permutator.Must(w.Wiring)}
		for i := 0; i < len(w.Notches); i++ {
			t.notches = append(t.notches, cryptors.Encode(w.Notches[i]))
		}
		rotorCatalog[w.Name] = t
	}

	for _, w := range cryptors.Reflectors {
		p := permutator.Must(w.Wiring)
		if !p.IsInvolution() || len(p.FixedPoints()) != 0 {
			panic("reflector " + w.Name + " is not a fixed point free involution")
		}
		reflectorCatalog[w.Name] = p
	}
}

// RotorNames lists the rotors in catalog order.
func RotorNames() []string {
	names := make([]string, len(cryptors.Rotors))
	for i, w := range cryptors.Rotors {
		names[i] = w.Name
	}
	return names
}

// ReflectorNames lists the reflectors in catalog order.
func ReflectorNames() []string {
	names := make([]string, len(cryptors.Reflectors))
	for i, w := range cryptors.Reflectors {
		names[i] = w.Name
	}
	return names
}

// NewRotor returns a fresh rotor of the named type, ring setting and
// position 'A'.
func NewRotor(name string) (*rotor.Rotor, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	t, ok := rotorCatalog[key]
	if !ok {
		return nil, settingError(ErrUnknownRotor, name, "want one of %s", strings.Join(RotorNames(), ", "))
	}
	return rotor.New(key, t.wiring, t.notches...), nil
}

// Reflector returns the named reflector wiring.
func Reflector(name string) (*permutator.Permutator, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	p, ok := reflectorCatalog[key]
	if !ok {
		return nil, settingError(ErrUnknownReflector, name, "want one of %s", strings.Join(ReflectorNames(), ", "))
	}
	return p, nil
}
