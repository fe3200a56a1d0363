package perception

import (
	"strings"
	"time"
)

// Stride sets coprime to the pool sizes, so a fixed stride never revisits an
// item within one selection.
var auspiciousStrides = []uint64{1, 2, 4, 7, 8, 11, 13}  // len(auspiciousPool) == 15
var inauspiciousStrides = []uint64{1, 3, 7, 9}           // len(inauspiciousPool) == 10

// almanacPhrase is a deterministic novelty: the same date always yields the
// same "宜/忌" lists. Not a real almanac computation.
func almanacPhrase(now time.Time) string {
	h := dayHash(now)

	goodCount := 2 + int(h%4)      // 2..5
	badCount := 2 + int((h>>8)%3)  // 2..4

	good := pickItems(auspiciousPool, h>>16, auspiciousStrides[(h>>4)%uint64(len(auspiciousStrides))], goodCount)
	bad := pickItems(inauspiciousPool, h>>24, inauspiciousStrides[(h>>12)%uint64(len(inauspiciousStrides))], badCount)

	return "宜: " + strings.Join(good, "、") + "；忌: " + strings.Join(bad, "、")
}

// dayHash mixes the calendar date into a 64-bit value (splitmix64 finalizer).
func dayHash(t time.Time) uint64 {
	seed := uint64(t.Year())*10000 + uint64(t.Month())*100 + uint64(t.Day())
	z := seed + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func pickItems(pool []string, start, stride uint64, count int) []string {
	n := uint64(len(pool))
	out := make([]string, 0, count)
	for i := uint64(0); i < uint64(count); i++ {
		out = append(out, pool[(start+i*stride)%n])
	}
	return out
}
