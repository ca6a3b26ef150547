// rotor
package rotor

import (
	"fmt"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/permutator"
)

// Rotor is a wired wheel together with its ring setting and its current
// position in the machine window.
type Rotor struct {
	name     string
	forward  *permutator.Permutator
	reverse  *permutator.Permutator
	notches  [2]int
	ring     int
	position int
}

// New creates a rotor with ring setting and position 'A'.  notches holds one
// or two notch positions (0 - 25); the rotor carries its left neighbour when
// it stands at one of them.
func New(name string, forward *permutator.Permutator, notches ...int) *Rotor {
	var r Rotor
	r.name = name
	r.forward = forward
	r.reverse = forward.Inverse()
	r.notches = [2]int{cryptors.NoNotch, cryptors.NoNotch}
	for i, n := range notches {
		if i >= len(r.notches) {
			break
		}
		r.notches[i] = n
	}
	return &r
}

// Update sets the ring setting and the position, both 0 - 25.
func (r *Rotor) Update(ring, position int) {
	r.ring = cryptors.Mod(ring)
	r.position = cryptors.Mod(position)
}

// Clone returns an independent copy of r.  The wirings are immutable and
// shared.
func (r *Rotor) Clone() *Rotor {
	c := *r
	return &c
}

func (r *Rotor) Name() string {
	return r.name
}

// Wiring returns the forward wiring of the rotor.
func (r *Rotor) Wiring() *permutator.Permutator {
	return r.forward
}

func (r *Rotor) Position() int {
	return r.position
}

func (r *Rotor) SetPosition(position int) {
	r.position = cryptors.Mod(position)
}

func (r *Rotor) RingSetting() int {
	return r.ring
}

// Notches returns the notch positions; the second is cryptors.NoNotch for
// single notch rotors.
func (r *Rotor) Notches() [2]int {
	return r.notches
}

// IsAtTurnover reports whether the rotor stands at one of its notches.
func (r *Rotor) IsAtTurnover() bool {
	if r.position == r.notches[0] {
		return true
	}
	return r.notches[1] != cryptors.NoNotch && r.position == r.notches[1]
}

// Step advances the rotor by one position.
func (r *Rotor) Step() {
	r.position = (r.position + 1) % cryptors.AlphabetSize
}

// Apply passes the signal at contact n through the rotor in direction dir.
// The offset of the wiring against the fixed contacts is the position less
// the ring setting; it is applied on entry and removed on exit.
func (r *Rotor) Apply(dir cryptors.Direction, n int) int {
	offset := r.position - r.ring
	n = cryptors.Mod(n + offset)

	switch dir {
	case cryptors.Forward:
		n = r.forward.Apply(n)
	case cryptors.Reverse:
		n = r.reverse.Apply(n)
	}

	return cryptors.Mod(n - offset)
}

// String shows the rotor as name, window letter and two digit ring setting,
// e.g. "III V 01".
func (r *Rotor) String() string {
	return fmt.Sprintf("%s %c %02d", r.name, cryptors.Decode(r.Position()), r.RingSetting()+1)
}
