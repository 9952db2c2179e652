package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"schoolhub/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTTL    = time.Hour
	RefreshTokenTTL   = 7 * 24 * time.Hour
	EphemeralTokenTTL = time.Hour
)

// Token verification failures. Expiry and signature problems are kept
// apart so callers can report them separately.
var (
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims carried by an access token.
type AccessClaims struct {
	UserID uint
	Role   models.Role
}

// TokenService signs and verifies the session tokens (JWT access and
// refresh) and mints the opaque ephemeral tokens used for email
// verification and password reset. It keeps no state beyond its secrets.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewTokenService() *TokenService {
	access := os.Getenv("JWT_ACCESS_SECRET")
	if access == "" {
		access = "access_secret_change_me"
	}
	refresh := os.Getenv("JWT_REFRESH_SECRET")
	if refresh == "" {
		refresh = "refresh_secret_change_me"
	}
	return NewTokenServiceWithSecrets(access, refresh)
}

func NewTokenServiceWithSecrets(accessSecret, refreshSecret string) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

// IssueAccessToken signs a short-lived HS256 token carrying the account
// id and role.
func (s *TokenService) IssueAccessToken(userID uint, role models.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"iat":     now.Unix(),
		"exp":     now.Add(AccessTokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.accessSecret)
}

// IssueRefreshToken signs a long-lived HS256 token carrying only the
// account id.
func (s *TokenService) IssueRefreshToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(RefreshTokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.refreshSecret)
}

// VerifyAccessToken checks signature and expiry and returns the embedded
// claims. Expired tokens fail with ErrTokenExpired, everything else with
// ErrTokenInvalid.
func (s *TokenService) VerifyAccessToken(token string) (*AccessClaims, error) {
	claims, err := s.parse(token, s.accessSecret)
	if err != nil {
		return nil, err
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}
	return &AccessClaims{UserID: uint(userID), Role: models.Role(role)}, nil
}

// VerifyRefreshToken checks signature and expiry and returns the account id.
func (s *TokenService) VerifyRefreshToken(token string) (uint, error) {
	claims, err := s.parse(token, s.refreshSecret)
	if err != nil {
		return 0, err
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrTokenInvalid
	}
	return uint(userID), nil
}

func (s *TokenService) parse(token string, secret []byte) (jwt.MapClaims, error) {
	t, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok || !t.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// NewEphemeralToken returns a high-entropy opaque token and its absolute
// expiry, now + ttl.
func (s *TokenService) NewEphemeralToken(ttl time.Duration) (string, time.Time, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, err
	}
	return hex.EncodeToString(buf), time.Now().Add(ttl), nil
}
