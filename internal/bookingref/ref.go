// Package bookingref generates booking reference numbers.
package bookingref

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Prefix marks homestay/tourism bookings on every reference.
	Prefix = "HTB-"

	// RefSize is the length of the random part of a reference.
	RefSize = 10

	// RefAlphabet excludes 0/O, 1/I and lowercase so references survive
	// being read over the phone and written down.
	RefAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
)

// New generates a booking reference such as "HTB-7KQ2M9XWPR".
func New() (string, error) {
	id, err := gonanoid.Generate(RefAlphabet, RefSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate booking reference: %w", err)
	}
	return Prefix + id, nil
}

// Valid reports whether ref has the expected prefix, length and alphabet.
func Valid(ref string) bool {
	if !strings.HasPrefix(ref, Prefix) {
		return false
	}
	id := strings.TrimPrefix(ref, Prefix)
	if len(id) != RefSize {
		return false
	}
	for _, c := range id {
		if !strings.ContainsRune(RefAlphabet, c) {
			return false
		}
	}
	return true
}
