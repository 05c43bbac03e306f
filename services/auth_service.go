package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"employee_management/config"
	"employee_management/models"
	"employee_management/types"
	"employee_management/validation"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Principal is the authenticated caller carried in a token.
type Principal struct {
	ID   string      `json:"id"`
	Role models.Role `json:"role"`
	Name string      `json:"name"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

type LoginInput struct {
	Email    string      `json:"email" validate:"required"`
	Password string      `json:"password" validate:"required"`
	UserType models.Role `json:"user_type" validate:"required,oneof=admin employee"`
}

type Claims struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
	Name   string      `json:"name"`
	jwt.RegisteredClaims
}

type AuthService struct {
	db  *gorm.DB
	cfg config.Config
}

func invalidCredentials() *types.AppError {
	return types.NewAppError(types.CodeUnauthorized, types.ErrBadCredentials, types.ErrInvalidCredentials)
}

// Login checks the credentials for the requested user type and returns a signed token.
// Employees must be approved and active; every failure reads the same.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, *Principal, error) {
	if err := validation.Struct(in); err != nil {
		return "", nil, err
	}

	var principal *Principal
	switch in.UserType {
	case models.RoleAdmin:
		emailOK := strings.EqualFold(strings.TrimSpace(in.Email), s.cfg.AdminEmail)
		passwordOK := subtle.ConstantTimeCompare([]byte(in.Password), []byte(s.cfg.AdminPassword)) == 1
		if !emailOK || !passwordOK {
			return "", nil, invalidCredentials()
		}
		principal = &Principal{ID: models.AdminID, Role: models.RoleAdmin, Name: adminDisplayName}
	default:
		var employee models.Employee
		err := s.db.WithContext(ctx).
			Where("email = ?", strings.ToLower(strings.TrimSpace(in.Email))).
			First(&employee).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, invalidCredentials()
		}
		if err != nil {
			return "", nil, types.Database(err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(in.Password)); err != nil {
			return "", nil, invalidCredentials()
		}
		if !employee.IsApproved || !employee.IsActive {
			return "", nil, invalidCredentials()
		}
		principal = &Principal{ID: employee.ID, Role: models.RoleEmployee, Name: employee.FullName}
	}

	token, err := s.IssueToken(*principal)
	if err != nil {
		return "", nil, err
	}
	return token, principal, nil
}

func (s *AuthService) IssueToken(p Principal) (string, error) {
	return IssueToken(s.cfg.JWTSecret, s.cfg.TokenExpiry, p)
}

// IssueToken signs an HS256 token for p that expires after ttl.
func IssueToken(secret string, ttl time.Duration, p Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: p.ID,
		Role:   p.Role,
		Name:   p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies an HS256 token and returns its principal.
func ParseToken(secret, tokenString string) (*Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims.UserID == "" || (claims.Role != models.RoleAdmin && claims.Role != models.RoleEmployee) {
		return nil, errors.New("token is missing user claims")
	}
	return &Principal{ID: claims.UserID, Role: claims.Role, Name: claims.Name}, nil
}
