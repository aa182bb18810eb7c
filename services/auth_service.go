package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"shop-api/apperrors"
	"shop-api/models"
)

const minPasswordLength = 6

var validate = validator.New()

// AuthService handles registration and login. Login failures are reported
// uniformly so callers cannot tell an unknown email from a wrong password.
type AuthService struct {
	store  Transactor
	tokens *TokenService
}

func NewAuthService(store Transactor, tokens *TokenService) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Register creates a new account. Email is normalized to lowercase before the
// duplicate check and the insert, both of which run in one transaction.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, apperrors.Unprocessable("Invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.Validation("Password must be at least 6 characters")
	}

	user := &models.User{Email: email}
	err := s.store.Transact(ctx, func(tx Store) error {
		_, err := tx.FindUserByEmail(ctx, email)
		if err == nil {
			return apperrors.Conflict("Email already registered")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := HashPassword(password)
		if err != nil {
			return err
		}
		user.Password = hashed
		return tx.CreateUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.Authentication("Invalid email or password")
		}
		return "", err
	}
	if !VerifyPassword(password, user.Password) {
		return "", apperrors.Authentication("Invalid email or password")
	}
	return s.tokens.Issue(user.ID)
}
