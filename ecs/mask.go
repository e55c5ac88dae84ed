package ecs

import (
	"math/bits"
	"strconv"
	"strings"
)

// MaxComponents is the number of distinct component kinds a single World can
// register. Each kind owns one bit of a Mask.
const MaxComponents = 64

// Mask is a set of component bits. Bit i belongs to the component registered
// i-th in a World.
type Mask uint64

// Bit returns the mask with only the given component's bit set.
func Bit(id ComponentId) Mask {
	return Mask(1) << id
}

// Has reports whether the bit for id is set.
func (m Mask) Has(id ComponentId) bool {
	return m&Bit(id) != 0
}

// Contains reports whether every bit of sub is also set in m.
func (m Mask) Contains(sub Mask) bool {
	return m&sub == sub
}

// Intersects reports whether m and other share at least one bit.
func (m Mask) Intersects(other Mask) bool {
	return m&other != 0
}

// Matches is the query predicate: all required bits present and no excluded
// bit present.
func (m Mask) Matches(require, exclude Mask) bool {
	return m&require == require && m&exclude == 0
}

// Count returns the number of bits set.
func (m Mask) Count() int {
	return bits.OnesCount64(uint64(m))
}

// Each calls fn for every set bit, lowest first.
func (m Mask) Each(fn func(id ComponentId)) {
	for m != 0 {
		id := bits.TrailingZeros64(uint64(m))
		fn(ComponentId(id))
		m &^= Mask(1) << id
	}
}

func (m Mask) String() string {
	if m == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	m.Each(func(id ComponentId) {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(strconv.Itoa(int(id)))
	})
	sb.WriteByte('}')
	return sb.String()
}
