package service

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/msp-aci-api/internal/models"
	appErrors "github.com/noah-isme/msp-aci-api/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// CreateUserRequest captures fields for creating a dashboard account.
// bcrypt only reads the first 72 bytes of a password, hence the cap.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserService manages dashboard accounts. Creates are serialised so two
// requests for the same username cannot both pass the uniqueness check.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
	hashCost  int
	writeMu   sync.Mutex
}

// NewUserService creates a new user service.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, validator: validate, logger: logger, hashCost: bcrypt.DefaultCost}
}

// Get returns a user by identifier.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if user == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return user, nil
}

// Create stores a new account with a bcrypt hash of its password.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid user payload")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	existing, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check username")
	}
	if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username already exists")
	}

	user := &models.User{Username: req.Username, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, writeFailure(err, "username already exists", "failed to create user")
	}
	s.logger.Info("user created", zap.Int64("id", user.ID), zap.String("username", user.Username))
	return user, nil
}
