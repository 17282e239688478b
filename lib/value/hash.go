package value

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Hash returns a 64 bit hash of a tuple of values. Equal tuples hash equally;
// Int and Double never collide structurally because each value is prefixed
// with its type tag. Callers must still verify equality on collision.
func Hash(vals ...Value) uint64 {
	d := xxhash.New()
	var buf [9]byte
	for _, v := range vals {
		if IsNil(v) {
			buf[0] = byte(Types.Null)
			_, _ = d.Write(buf[:1])
			continue
		}
		buf[0] = byte(v.Type())
		switch v := v.(type) {
		case Int:
			binary.LittleEndian.PutUint64(buf[1:], uint64(v))
			_, _ = d.Write(buf[:9])
		case Double:
			f := float64(v)
			switch {
			case f == 0:
				// -0 and +0 are equal, so they must hash the same
				f = 0
			case math.IsNaN(f):
				f = math.NaN()
			}
			binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(f))
			_, _ = d.Write(buf[:9])
		case Bool:
			buf[1] = 0
			if v {
				buf[1] = 1
			}
			_, _ = d.Write(buf[:2])
		case Date:
			binary.LittleEndian.PutUint32(buf[1:], uint32(v))
			_, _ = d.Write(buf[:5])
		case String:
			binary.LittleEndian.PutUint64(buf[1:], uint64(len(v)))
			_, _ = d.Write(buf[:9])
			_, _ = d.WriteString(string(v))
		}
	}
	return d.Sum64()
}

// TupleEqual compares two key tuples element by element with Equal, so Nil
// matches Nil.
func TupleEqual(left, right []Value) bool {
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if !left[i].Equal(right[i]) {
			return false
		}
	}
	return true
}
