package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/djangocon/conference-site/internal/model"
)

// CookieName — имя cookie с токеном сессии.
const CookieName = "sessionid"

var ErrInvalidSession = errors.New("invalid session")

// Claims — содержимое токена сессии.
type Claims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// Sessions выпускает и проверяет HS256-токены сессий.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL — время жизни выпускаемых токенов.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Issue выпускает токен для пользователя и возвращает момент его истечения.
func (s *Sessions) Issue(u *model.User) (string, time.Time, error) {
	if u == nil || u.ID == 0 {
		return "", time.Time{}, errors.New("issue session: user is required")
	}
	now := s.now()
	expires := now.Add(s.ttl)
	claims := Claims{
		UserID: u.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return token, expires, nil
}

// Parse проверяет подпись и срок действия токена.
func (s *Sessions) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.UserID == 0 {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
