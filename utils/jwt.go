package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/daneswara/kafe-pos/config"
)

type CustomClaims struct {
	UserID   uint   `json:"user_id"`
	UserUUID string `json:"user_uuid"`
	Name     string `json:"name"`
	Role     string `json:"role"` // active role saat token diterbitkan
	jwt.RegisteredClaims
}

// GenerateToken menerbitkan JWT HS256 dengan klaim active role.
func GenerateToken(userID uint, userUUID, name, role string) (string, error) {
	cfg := config.Get()

	claims := &CustomClaims{
		UserID:   userID,
		UserUUID: userUUID,
		Name:     name,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "kafe-pos",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Get().JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("token tidak valid atau kadaluarsa")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("klaim token tidak valid")
	}

	return claims, nil
}
