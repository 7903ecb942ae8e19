package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes, so longer passwords are refused
// rather than silently truncated.
const maxPasswordBytes = 72

func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", InvalidInput("password must be at most %d bytes", maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePasswords returns ErrInvalidCredentials on a mismatch.
func ComparePasswords(hashedPassword string, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidCredentials
	}
	return err
}

// NewResetToken returns byteLen random bytes as URL-safe base64, ready to be
// placed in a reset link.
func NewResetToken(byteLen int) (string, error) {
	if byteLen <= 0 {
		return "", errors.New("invalid token length")
	}

	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewVerificationCode returns a zero-padded numeric code drawn uniformly
// from [0, 10^digits).
func NewVerificationCode(digits int) (string, error) {
	if digits <= 0 || digits > 18 {
		return "", errors.New("invalid verification code length")
	}

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n.Int64()), nil
}

// SecretsEqual compares a stored code or token with a caller-supplied one in
// constant time.
func SecretsEqual(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
