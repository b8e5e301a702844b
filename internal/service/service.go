package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/kitten-service/internal/auth"
	"github.com/Dan9191/kitten-service/internal/models"
	"github.com/Dan9191/kitten-service/internal/repository"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown user or a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned when a referenced record does not exist
	ErrNotFound = errors.New("not found")
	// ErrNotOwner is returned when the caller does not own the record
	ErrNotOwner = errors.New("kitten does not belong to user")
)

// ValidationError reports a malformed request field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Store is the persistence the service depends on
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateKitten(ctx context.Context, kitten *models.Kitten) error
	FindKittenByID(ctx context.Context, id int64) (*models.Kitten, error)
	ListKittensByOwner(ctx context.Context, ownerID int64) ([]models.Kitten, error)
	DeleteKitten(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// Service handles business logic
type Service struct {
	store  Store
	hasher *auth.Hasher
	tokens *auth.TokenService
	log    *logrus.Logger
}

// NewService initializes a new service
func NewService(store Store, hasher *auth.Hasher, tokens *auth.TokenService, log *logrus.Logger) *Service {
	return &Service{store: store, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a new user with hashed password and returns a token for it
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", &ValidationError{Field: "username", Message: "is required"}
	}
	if password == "" {
		return "", &ValidationError{Field: "password", Message: "is required"}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	user := &models.User{Username: username, PasswordHash: hash}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User registered")
	return token, nil
}

// Login authenticates a user and returns a token
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.store.FindUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	ok, err := s.hasher.Check(password, user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		s.log.WithField("username", username).Warn("Login with wrong password")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", err
	}

	s.log.WithField("user_id", user.ID).Info("User logged in")
	return token, nil
}

// GetKitten returns a kitten owned by the caller
func (s *Service) GetKitten(ctx context.Context, caller models.Identity, id int64) (*models.Kitten, error) {
	kitten, err := s.store.FindKittenByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("kitten %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	// Verify kitten belongs to user
	if kitten.OwnerID != caller.ID {
		s.log.WithFields(logrus.Fields{"user_id": caller.ID, "kitten_id": id}).Warn("Kitten access by non-owner")
		return nil, ErrNotOwner
	}
	return kitten, nil
}

// ListKittens returns every kitten owned by the caller
func (s *Service) ListKittens(ctx context.Context, caller models.Identity) ([]models.Kitten, error) {
	return s.store.ListKittensByOwner(ctx, caller.ID)
}

// CreateKitten creates a new kitten owned by the caller
func (s *Service) CreateKitten(ctx context.Context, caller models.Identity, req models.KittenRequest) (*models.Kitten, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "is required"}
	}
	if req.Age == nil {
		return nil, &ValidationError{Field: "age", Message: "is required"}
	}
	if *req.Age < 0 {
		return nil, &ValidationError{Field: "age", Message: "must not be negative"}
	}
	if strings.TrimSpace(req.Color) == "" {
		return nil, &ValidationError{Field: "color", Message: "is required"}
	}

	kitten := &models.Kitten{
		Name:    req.Name,
		Age:     *req.Age,
		Color:   req.Color,
		OwnerID: caller.ID,
	}
	if err := s.store.CreateKitten(ctx, kitten); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": caller.ID, "kitten_id": kitten.ID}).Info("Kitten created")
	return kitten, nil
}

// DeleteKitten deletes a kitten owned by the caller
func (s *Service) DeleteKitten(ctx context.Context, caller models.Identity, id int64) error {
	if _, err := s.GetKitten(ctx, caller, id); err != nil {
		return err
	}

	err := s.store.DeleteKitten(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("kitten %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"user_id": caller.ID, "kitten_id": id}).Info("Kitten deleted")
	return nil
}

// Healthy reports whether the store is reachable
func (s *Service) Healthy(ctx context.Context) error {
	return s.store.Ping(ctx)
}
