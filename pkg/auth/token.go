package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"telemed/internal/domain"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID int64           `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

// IssueToken signs a short-lived access token carrying the caller's identity
// and role. Token issuance normally lives in the auth subsystem; this helper
// exists for tooling and tests.
func IssueToken(signingKey string, userID int64, role domain.UserRole, ttl time.Duration) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signingKey))
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// ParseToken validates an access token and extracts the caller identity.
func ParseToken(signingKey, tokenString string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(signingKey), nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return domain.Identity{}, errors.New("invalid token")
	}

	return domain.Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

const meetingPasswordAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

// GenerateMeetingPassword returns a short random password for a meeting
// room. Ambiguous characters are excluded.
func GenerateMeetingPassword(length int) (string, error) {
	if length <= 0 {
		length = 8
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating meeting password: %w", err)
	}

	for i, b := range buf {
		buf[i] = meetingPasswordAlphabet[int(b)%len(meetingPasswordAlphabet)]
	}
	return string(buf), nil
}
