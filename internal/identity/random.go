package identity

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
)

// Generates random integer between two numbers (including the min/max)
func NumberInRange(min, max int64) (randomNumber int64, err error) {
	if min > max {
		err = fmt.Errorf("min must be less than or equal to max")
		return
	}

	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		err = fmt.Errorf("failed reading in range: %w", err)
		return
	}

	randomNumber = n.Int64() + min
	return
}

// New positive session number
func SessionNumber() (number int64, err error) {
	number, err = NumberInRange(1, math.MaxInt32)
	return
}
