package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Service interface {
	GenerateAccessToken(plannerID string, name string, role string) (token string, expiresAt int64, err error)
	GenerateSSEToken(plannerID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (plannerID string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(plannerID string, name string, role string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"planner_id": plannerID,
		"name":       name,
		"role":       role,
		"type":       "access",
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateSSEToken issues a short-lived token the EventSource client
// passes as a query parameter, since it cannot set headers.
func (j *JWTService) GenerateSSEToken(plannerID string) (token string, expiresIn int, err error) {
	const ttl = 5 * time.Minute
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"planner_id": plannerID,
		"type":       "sse",
		"exp":        time.Now().Add(ttl).Unix(),
	})
	return tokenString, int(ttl.Seconds()), err
}

func (j *JWTService) ValidateSSEToken(tokenString string) (plannerID string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", ErrInvalidToken
	}
	if err := jwt.Validate(token); err != nil {
		return "", ErrInvalidToken
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", ErrInvalidToken
	}
	if tokenType, ok := claims["type"].(string); !ok || tokenType != "sse" {
		return "", ErrInvalidToken
	}
	id, ok := claims["planner_id"].(string)
	if !ok || id == "" {
		return "", ErrInvalidToken
	}
	return id, nil
}
