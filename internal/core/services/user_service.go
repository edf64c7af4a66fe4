package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
	"github.com/mainmeal/mainmeal_backend/internal/models"
	"github.com/mainmeal/mainmeal_backend/internal/utils"
)

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := models.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Registration with existing email")
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// AuthenticateUser verifies credentials. Unknown email and wrong password
// both come back as ErrUnauthorized so the response cannot be used to probe
// which addresses have accounts.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Debug("Login with unknown email")
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Debug("Login with wrong password", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrUnauthorized
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Password changed", slog.String("user_id", userID))
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("User account deleted", slog.String("user_id", userID))
	return nil
}
