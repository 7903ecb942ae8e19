package utils

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"regexp"
	"time"
)

var healthIDPattern = regexp.MustCompile(`^SS-\d{4}-[A-Z2-7]{8}$`)

// GenerateHealthID returns an identifier of the form SS-<year>-<8 base32 chars>,
// e.g. SS-2026-K7QF2M4A.
func GenerateHealthID(now time.Time) (string, error) {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("SS-%04d-%s", now.Year(), base32.StdEncoding.EncodeToString(buf)), nil
}

func IsHealthID(s string) bool {
	return healthIDPattern.MatchString(s)
}
