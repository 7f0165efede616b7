package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"household-services-api/models"
	"household-services-api/redis"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// JWTSecret returns the token signing key.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return []byte(secret)
}

// CreateAccessToken signs a short-lived token carrying the user's identity and role.
func CreateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}

// CreateTokenPair issues an access/refresh pair. The refresh token goes into a
// redis allowlist so it can be revoked by rotation.
func CreateTokenPair(user *models.User) (string, string, error) {
	accessToken, err := CreateAccessToken(user)
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(refreshTokenTTL).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString(JWTSecret())
	if err != nil {
		return "", "", err
	}

	if redis.Client != nil {
		redis.Client.Set(redis.Ctx, "refresh:"+refreshToken, user.ID, refreshTokenTTL+5*time.Minute)
	}

	return accessToken, refreshToken, nil
}

// ConsumeRefreshToken validates a refresh token against the allowlist and
// removes it, so every refresh token works exactly once.
func ConsumeRefreshToken(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid refresh token")
	}

	if redis.Client != nil {
		if _, err := redis.Client.Get(redis.Ctx, "refresh:"+tokenStr).Result(); err != nil {
			return 0, fmt.Errorf("refresh token revoked or unknown")
		}
		redis.Client.Del(redis.Ctx, "refresh:"+tokenStr)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid refresh token claims")
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid user ID in refresh token")
	}
	return uint(id), nil
}
