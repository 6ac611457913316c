package jwt

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Tokens are issued by the company SSO gateway; this service only verifies
// them and exposes the claims the engines care about.

type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	UserIDFromContext(ctx context.Context) (string, bool)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// UserIDFromContext extracts the user_id claim from a verified token, used
// for created_by audit fields.
func (j *JWTService) UserIDFromContext(ctx context.Context) (string, bool) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", false
	}
	userID, ok := claims["user_id"].(string)
	return userID, ok && userID != ""
}
