package tokens

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SubjectKind distinguishes voter and admin bearer tokens. Handlers must
// never accept one kind where the other is required.
type SubjectKind string

const (
	SubjectVoter SubjectKind = "voter"
	SubjectAdmin SubjectKind = "admin"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrWrongSubject = errors.New("token subject kind mismatch")
)

// Claims is the bearer payload attached to every authenticated request.
type Claims struct {
	Kind SubjectKind `json:"kind"`
	Role string      `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies HMAC-signed bearer tokens.
type Issuer struct {
	secret []byte
	ttl    map[SubjectKind]time.Duration
}

func NewIssuer(secret string, voterTTL time.Duration, adminTTL time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl: map[SubjectKind]time.Duration{
			SubjectVoter: voterTTL,
			SubjectAdmin: adminTTL,
		},
	}
}

func (i *Issuer) Mint(subjectID string, kind SubjectKind, role string, now time.Time) (string, error) {
	if strings.TrimSpace(subjectID) == "" {
		return "", errors.New("subject id is required")
	}
	ttl := i.ttl[kind]
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	claims := Claims{
		Kind: kind,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strings.TrimSpace(subjectID),
			Issuer:    "civica",
			IssuedAt:  jwt.NewNumericDate(now.UTC()),
			ExpiresAt: jwt.NewNumericDate(now.UTC().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

func (i *Issuer) Verify(raw string, want SubjectKind) (Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.Kind != want {
		return Claims{}, ErrWrongSubject
	}
	return claims, nil
}

// FromAuthorizationHeader strips the Bearer prefix if present.
func FromAuthorizationHeader(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
