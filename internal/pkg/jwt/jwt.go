package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/tausif-btb/cbl-erp/internal/domain/user"
)

type Service interface {
	GenerateAccessToken(userID string, role user.Role, employeeID *string) (token string, expiresAt int64, err error)
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

func (j *JWTService) GenerateAccessToken(userID string, role user.Role, employeeID *string) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"role":    string(role),
		"type":    "access",
		"jti":     uuid.NewString(),
		"exp":     expiresAt,
		"iat":     time.Now().Unix(),
	}
	if employeeID != nil {
		claims["employee_id"] = *employeeID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresAt, nil
}
