package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/segyhp/loan-backoffice/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 10

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	return string(bytes), err
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Claims is the signed token body. The principal travels in the token so
// authenticated requests never hit the user table.
type Claims struct {
	UserID     int64  `json:"id"`
	Name       string `json:"nombre"`
	NationalID string `json:"cedula"`
	Role       string `json:"rol"`
	jwt.RegisteredClaims
}

func (c *Claims) Principal() domain.Principal {
	return domain.Principal{ID: c.UserID, Name: c.Name, NationalID: c.NationalID, Role: c.Role}
}

// Manager issues and verifies HS256 tokens.
type Manager struct {
	secret    []byte
	issuer    string
	expiresIn time.Duration
	now       func() time.Time
}

func NewManager(secret, issuer string, expiresIn time.Duration) *Manager {
	return &Manager{
		secret:    []byte(secret),
		issuer:    issuer,
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

func (m *Manager) Issue(p domain.Principal) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:     p.ID,
		Name:       p.Name,
		NationalID: p.NationalID,
		Role:       p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Role != domain.RoleAdmin && claims.Role != domain.RoleOperator {
		return nil, errors.New("verify token: unknown role")
	}

	return claims, nil
}
