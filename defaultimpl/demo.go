package impl

import (
	"math/rand"
)

// DemoSeed is the seed of the default demo data.
const DemoSeed = 1337

// DemoData returns size pseudo random bytes. The same seed always returns the same bytes.
func DemoData(size int, seed int64) []byte {
	if size < 0 {
		size = 0
	}
	data := make([]byte, size)
	rnd := rand.New(rand.NewSource(seed))
	_, _ = rnd.Read(data) // never fails
	return data
}

// CountData returns size bytes with the value of the position (mod 256): 0, 1, 2, ..., 255, 0, 1, ...
func CountData(size int) []byte {
	if size < 0 {
		size = 0
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}
