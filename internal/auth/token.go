package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims is what a verified token says about its bearer.
type Claims struct {
	UserID    uint
	SessionID string
}

// Generate issues a token tied to a server-side session. The session id is
// carried as the jti claim, so ending the session revokes the token.
func (m *TokenManager) Generate(user *models.User, sessionID string) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"jti":   sessionID,
		"email": user.Email,
		"roles": user.EffectiveRoles(),
		"exp":   now.Add(m.ttl).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates the token and returns the user and session it was issued
// for.
func (m *TokenManager) Parse(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return Claims{}, ErrInvalidToken
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: uint(sub), SessionID: jti}, nil
}
