// bitops project bitops.go
package bitops

// New returns a zeroed bit set large enough to hold n bits.
func New(n int) []byte {
	return make([]byte, (n+7)>>3)
}

func SetBit(ary []byte, bit int) []byte {
	ary[bit>>3] |= (1 << (bit & 7))
	return ary
}

func GetBit(ary []byte, bit int) bool {
	return (ary[bit>>3]&(1<<(bit&7)) != 0)
}

// TestAndSet sets bit and reports whether it was already set.
func TestAndSet(ary []byte, bit int) bool {
	if GetBit(ary, bit) {
		return true
	}
	SetBit(ary, bit)
	return false
}
