package jwt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crm-console-backend/utils"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
)

func CreateToken(staff Staff, role Role, validUntil int64) (string, error) {
	secret, ok := RoleSecrets[role]
	if !ok {
		return "", fmt.Errorf("invalid role specified")
	}

	if validUntil == 0 {
		now := time.Now()
		validUntil = now.Add(time.Minute * 15).Unix()
	}

	claims := jwt.MapClaims{
		"id":    staff.Id,
		"email": staff.Email,
		"exp":   validUntil,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func CreateTokenWithRefresh(staff Staff, role Role, validUntil int64) (TokenResponse, error) {
	accessToken, err := CreateToken(staff, role, validUntil)
	if err != nil {
		return TokenResponse{}, err
	}

	refreshToken := utils.NewOpaqueToken()

	staffData := map[string]string{
		"id":    staff.Id,
		"email": staff.Email,
	}
	staffDataJSON, _ := json.Marshal(staffData)

	err = RedisClient.Set(context.Background(), refreshToken, staffDataJSON, RefreshTokenTTL).Err()
	if err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func ParseToken(tokenString string, role Role) (jwt.MapClaims, error) {
	if len(tokenString) == 0 {
		return nil, fmt.Errorf("token string is empty")
	}

	secret, ok := RoleSecrets[role]
	if !ok {
		return nil, fmt.Errorf("invalid role specified")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("unauthorized: %v", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid - unauthorized")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("claims of unauthorized type")
	}

	return claims, nil
}

func RefreshToken(refreshToken string, role Role) (string, error) {
	if len(refreshToken) == 0 {
		return "", fmt.Errorf("refresh token is empty")
	}

	val, err := RedisClient.Get(context.Background(), refreshToken).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("invalid refresh token")
	} else if err != nil {
		return "", err
	}

	var staffData map[string]string
	if err := json.Unmarshal([]byte(val), &staffData); err != nil {
		return "", fmt.Errorf("invalid token data")
	}

	staff := Staff{
		Id:    staffData["id"],
		Email: staffData["email"],
	}

	err = cleanupExpiredTokens(staff.Email, refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to clean up expired refresh tokens: %v", err)
	}

	err = RedisClient.Expire(context.Background(), refreshToken, RefreshTokenTTL).Err()
	if err != nil {
		return "", fmt.Errorf("failed to update refresh token expiration: %v", err)
	}

	return CreateToken(staff, role, 0)
}

func cleanupExpiredTokens(email, currentRefreshToken string) error {
	iter := RedisClient.Scan(context.Background(), 0, "*", 0).Iterator()
	for iter.Next(context.Background()) {
		key := iter.Val()
		val, err := RedisClient.Get(context.Background(), key).Result()
		if err == redis.Nil {
			continue
		} else if err != nil {
			return fmt.Errorf("error fetching key %s: %v", key, err)
		}

		var staffData map[string]string
		if err := json.Unmarshal([]byte(val), &staffData); err != nil {
			continue
		}

		if staffData["email"] == email && key != currentRefreshToken {
			ttl, err := RedisClient.TTL(context.Background(), key).Result()
			if err != nil {
				return fmt.Errorf("error checking TTL for key %s: %v", key, err)
			}
			if ttl <= 0 {
				_ = RedisClient.Del(context.Background(), key).Err()
			}
		}
	}
	return iter.Err()
}
