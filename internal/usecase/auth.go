package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mxkcz/notehub/internal/domain"
)

// AuthUseCase issues and verifies the opaque owner identity the note layer
// trusts: an HS256 token whose subject is the owner id.
type AuthUseCase struct {
	users    UserRepository
	secret   []byte
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewAuthUseCase(users UserRepository, secret []byte, tokenTTL time.Duration, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

func (uc *AuthUseCase) SignUp(ctx context.Context, email, name, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.users.Create(ctx, user); err != nil {
		uc.log.Error().Err(err).Str("email", email).Msg("create user failed")
		return "", err
	}

	return uc.issueToken(user.ID)
}

func (uc *AuthUseCase) SignIn(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	return uc.issueToken(user.ID)
}

// Verify returns the owner id carried by a valid token.
func (uc *AuthUseCase) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.StandardClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return uc.secret, nil
	})
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	claims, ok := parsed.Claims.(*jwt.StandardClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidCredentials
	}
	return claims.Subject, nil
}

func (uc *AuthUseCase) issueToken(ownerID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.StandardClaims{
		Subject:   ownerID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(uc.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
}
