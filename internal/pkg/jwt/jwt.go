package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const TokenTypeAccess = "access"

var ErrMissingEmployeeClaim = errors.New("token carries no employee_id claim")

type Service interface {
	// GenerateAccessToken issues an HS256 access token for an employee acting in role
	GenerateAccessToken(employeeID int64, role string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	expiration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: expiration,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(employeeID int64, role string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpirationTime).Unix()

	claims := map[string]interface{}{
		"employee_id": strconv.FormatInt(employeeID, 10),
		"role":        role,
		"type":        TokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// EmployeeIDFromClaims reads the employee_id claim, accepting the string form
// this service issues as well as a bare JSON number.
func EmployeeIDFromClaims(claims map[string]interface{}) (int64, error) {
	switch v := claims["employee_id"].(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return 0, ErrMissingEmployeeClaim
		}
		return id, nil
	case float64:
		if v <= 0 {
			return 0, ErrMissingEmployeeClaim
		}
		return int64(v), nil
	default:
		return 0, ErrMissingEmployeeClaim
	}
}
