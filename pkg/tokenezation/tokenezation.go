package tokenezation

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Issuer проставляется в каждый токен калькулятора и проверяется при разборе
const Issuer = "scientific-calculator"

var ErrInvalidToken = errors.New("invalid token")

// Claims токена владельца сессии. Login совпадает с Subject и ключом сессии
type Claims struct {
	Login string `json:"login"`
	jwt.RegisteredClaims
}

func newClaims(login string, now time.Time, ttl time.Duration) Claims {
	return Claims{
		Login: login,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   login,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// GenerateToken подписывает токен владельца сессии, ttl задаёт срок жизни
func GenerateToken(login string, secret string, ttl time.Duration) (string, error) {
	if login == "" {
		return "", fmt.Errorf("%w: empty login", ErrInvalidToken)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims(login, time.Now(), ttl))
	return token.SignedString([]byte(secret))
}

// ParseClaims проверяет подпись, сроки и издателя токена
func ParseClaims(tokenString string, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(Issuer, true) {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
	}
	if claims.Login == "" || claims.Login != claims.Subject {
		return nil, fmt.Errorf("%w: login claim is missing or invalid", ErrInvalidToken)
	}
	return claims, nil
}

// CheckToken возвращает login из валидного токена
func CheckToken(tokenString string, secret string) (string, error) {
	claims, err := ParseClaims(tokenString, secret)
	if err != nil {
		return "", err
	}
	return claims.Login, nil
}
