package services

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// codeAlphabet omits ambiguous characters (0/O, 1/I/L) so codes survive
// being read aloud or handwritten.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const codeGroups = 3
const codeGroupLen = 4

// NewVerificationCode generates a human-presentable random code like
// "K3QF-8MWN-T2VA". Uniqueness is guarded by the ledger's unique index, not
// by this function.
func NewVerificationCode() (string, error) {
	raw := make([]byte, codeGroups*codeGroupLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	var builder strings.Builder
	for i, b := range raw {
		if i > 0 && i%codeGroupLen == 0 {
			builder.WriteByte('-')
		}
		builder.WriteByte(codeAlphabet[int(b)%len(codeAlphabet)])
	}
	return builder.String(), nil
}
