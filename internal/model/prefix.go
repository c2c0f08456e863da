package model

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

const (
	// PrefixTimeLayout is the timestamp part of a KeyPrefix, local time, second resolution.
	PrefixTimeLayout = "2006-01-02_15-04-05"

	// SuffixLength is the number of random characters appended to the timestamp.
	SuffixLength = 6

	suffixAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	sidecarSuffix  = "_info.txt"
)

var prefixPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}_[A-Za-z0-9]{6}$`)

// KeyPrefix groups an uploaded file and its sidecar under one remote folder.
// Collisions are unlikely (62^6 suffixes per second) but not impossible.
type KeyPrefix string

// NewKeyPrefix builds a prefix from t and a fresh random suffix.
// Safe for concurrent use.
func NewKeyPrefix(t time.Time) KeyPrefix {
	return newKeyPrefix(t, randomSuffix(SuffixLength))
}

func newKeyPrefix(t time.Time, suffix string) KeyPrefix {
	return KeyPrefix(t.Format(PrefixTimeLayout) + "_" + suffix)
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return string(b)
}

// Validate checks that the prefix has the timestamp_suffix shape.
func (p KeyPrefix) Validate() error {
	if p == "" {
		return fmt.Errorf("key prefix cannot be empty")
	}
	if !prefixPattern.MatchString(string(p)) {
		return fmt.Errorf("key prefix %q does not match YYYY-MM-DD_HH-MM-SS_XXXXXX", string(p))
	}
	return nil
}

// SidecarName returns the file name of the provenance sidecar for this prefix.
func (p KeyPrefix) SidecarName() string {
	return string(p) + sidecarSuffix
}

// String returns the prefix as a string.
func (p KeyPrefix) String() string {
	return string(p)
}
