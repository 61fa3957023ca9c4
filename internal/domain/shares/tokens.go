package shares

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const pinSpace = 100000 // 00000-99999

// TokenGenerator produce tokens de compartir y PINs.
type TokenGenerator interface {
	NewToken() (string, error)
	NewPIN() (string, error)
}

// CryptoTokens usa uuid v4 (122 bits aleatorios) y crypto/rand para el PIN.
type CryptoTokens struct{}

func (CryptoTokens) NewToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (CryptoTokens) NewPIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(pinSpace))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%05d", n.Int64()), nil
}
