package jwt

import (
	"errors"
	"fmt"
	"time"

	"recipehub/domain"

	"github.com/golang-jwt/jwt/v4"
)

type (
	JWTService interface {
		GenerateAccessToken(userID string, role string) (string, error)
		GenerateRefreshToken(userID string, role string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserIDByToken(token string, tokenType string) (string, string, error)
	}

	jwtUserClaim struct {
		UserID    string `json:"user_id"`
		Role      string `json:"role"`
		TokenType string `json:"token_type"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey  string
		issuer     string
		accessTTL  time.Duration
		refreshTTL time.Duration
		now        func() time.Time
	}
)

func NewJWTService(secretKey string, accessTTL, refreshTTL time.Duration) JWTService {
	return &jwtService{
		secretKey:  secretKey,
		issuer:     "RECIPEHUB",
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (j *jwtService) GenerateAccessToken(userID string, role string) (string, error) {
	return j.generate(userID, role, domain.TokenTypeAccess, j.accessTTL)
}

func (j *jwtService) GenerateRefreshToken(userID string, role string) (string, error) {
	return j.generate(userID, role, domain.TokenTypeRefresh, j.refreshTTL)
}

func (j *jwtService) generate(userID, role, tokenType string, ttl time.Duration) (string, error) {
	now := j.now()
	claims := jwtUserClaim{
		userID,
		role,
		tokenType,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (j *jwtService) parseToken(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

// GetUserIDByToken returns the user id and role of a valid token of the
// requested type.
func (j *jwtService) GetUserIDByToken(token string, tokenType string) (string, string, error) {
	parsed, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", domain.ErrTokenExpired
		}
		return "", "", domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return "", "", domain.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*jwtUserClaim)
	if !ok || claims.UserID == "" || claims.TokenType != tokenType {
		return "", "", domain.ErrTokenInvalid
	}

	return claims.UserID, claims.Role, nil
}
