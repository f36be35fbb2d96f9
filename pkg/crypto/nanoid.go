package crypto

import (
	"crypto/rand"
	"math"
)

const (
	idAlphabet string = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	idSize     int    = 22 // 22 * 6 = 132 bits (uuid is 128 bits) of entropy
)

// idMask covers the 64-character alphabet exactly, so every random byte
// masked with it yields a valid index.
const idMask = 63

// NewID generates a url-safe random identifier for accounts and token
// records.
func NewID() (string, error) {
	alphabetLen := len(idAlphabet)
	step := int(math.Ceil(1.6 * float64(idMask*idSize) / float64(alphabetLen)))

	id := make([]byte, idSize)
	buffer := make([]byte, step)

	for position := 0; position < idSize; {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}

		// Map random bytes to alphabet characters
		for i := 0; i < step && position < idSize; i++ {
			index := buffer[i] & idMask
			if int(index) < alphabetLen {
				id[position] = idAlphabet[index]
				position++
			}
		}
	}

	return string(id), nil
}
