package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ClaimSessionID is the JWT claim holding the session ID.
const ClaimSessionID = "sid"

// Tokens signs the session cookie so a browser cannot pick another
// browser's session ID.
type Tokens struct {
	key []byte
}

// NewTokens uses secret as the HMAC key. An empty secret is replaced by a
// random key, which makes every cookie issued before a restart invalid.
func NewTokens(secret string) (*Tokens, error) {
	if secret != "" {
		return &Tokens{key: []byte(secret)}, nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating session secret: %w", err)
	}
	return &Tokens{key: key}, nil
}

func (t *Tokens) Key() []byte {
	return t.key
}

func (t *Tokens) Issue(sessionID string) (string, error) {
	if sessionID == "" {
		return "", errors.New("missing session id")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		ClaimSessionID: sessionID,
		"iat":          time.Now().Unix(),
	})
	return token.SignedString(t.key)
}

// Parse verifies raw and returns the session ID it carries.
func (t *Tokens) Parse(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.key, nil
	})
	if err != nil {
		return "", err
	}
	id, ok := SessionID(token)
	if !ok {
		return "", errors.New("token has no session id")
	}
	return id, nil
}

// SessionID extracts the session ID from a verified token.
func SessionID(token *jwt.Token) (string, bool) {
	if token == nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	id, ok := claims[ClaimSessionID].(string)
	return id, ok && id != ""
}
