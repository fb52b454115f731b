package utils

import "golang.org/x/crypto/bcrypt"

// BcryptHasher salts and hashes with bcrypt; a fresh salt is drawn on every call.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher clamps cost into bcrypt's accepted range; 0 means bcrypt.DefaultCost (10).
func NewBcryptHasher(cost int) BcryptHasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
