package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/repos"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Login(ctx context.Context, login, password string) (string, *types.Person, error)
	ParseToken(tokenString string) (*TokenClaims, error)
}

type TokenClaims struct {
	PersonID uint   `json:"person_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	log        *logger.Logger
	personRepo repos.PersonRepo
	roleRepo   repos.RoleRepo
	secretKey  []byte
	tokenTTL   time.Duration
}

func NewAuthService(log *logger.Logger, personRepo repos.PersonRepo, roleRepo repos.RoleRepo, secretKey string, tokenTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		log:        serviceLog,
		personRepo: personRepo,
		roleRepo:   roleRepo,
		secretKey:  []byte(secretKey),
		tokenTTL:   tokenTTL,
	}
}

// Login compares the submitted password against the stored opaque value.
// The catalog never hashes passwords itself; whatever representation the
// caller stored is what the comparison runs on.
func (as *authService) Login(ctx context.Context, login, password string) (string, *types.Person, error) {
	person, err := as.personRepo.GetByLogin(ctx, nil, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if person.Password != password {
		return "", nil, ErrInvalidCredentials
	}

	roleName := ""
	if role, err := as.roleRepo.GetByID(ctx, nil, person.RoleID); err == nil {
		roleName = role.Name
	}

	now := time.Now()
	claims := TokenClaims{
		PersonID: person.ID,
		Role:     roleName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", person.ID),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.secretKey)
	if err != nil {
		as.log.Error("Token signing failed", "error", err)
		return "", nil, err
	}
	return signed, person, nil
}

func (as *authService) ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return as.secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
