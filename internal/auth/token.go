package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	return []byte(secret), nil
}

// NewAccessToken signs a short lived token carrying the user id and email.
func NewAccessToken(userID int, email string, now time.Time) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     now.Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// NewRefreshToken signs a long lived token used only to mint new access
// tokens. The "typ" claim keeps it from being accepted as an access token.
func NewRefreshToken(userID int, now time.Time) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"user_id": userID,
		"typ":     "refresh",
		"exp":     now.Add(refreshTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	secret, err := jwtSecret()
	if err != nil {
		return nil, err
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// VerifyAccessToken validates an access token and returns the user id.
func VerifyAccessToken(tokenString string) (int, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		return 0, err
	}
	if typ, _ := claims["typ"].(string); typ == "refresh" {
		return 0, errors.New("refresh token used as access token")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("token missing user_id")
	}
	return int(userID), nil
}

// VerifyRefreshToken validates a refresh token and returns the user id.
func VerifyRefreshToken(tokenString string) (int, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		return 0, err
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return 0, errors.New("not a refresh token")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("token missing user_id")
	}
	return int(userID), nil
}
