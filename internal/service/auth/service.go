package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tausif-btb/cbl-erp/internal/domain/auth"
	"github.com/tausif-btb/cbl-erp/internal/domain/user"
	"github.com/tausif-btb/cbl-erp/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepo,
		jwtService:     jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	account, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Same error whether the account is missing or the password is
			// wrong, so the endpoint cannot be used to probe for emails.
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if !account.IsActive {
		return auth.LoginResponse{}, user.ErrAccountDeactivated
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(account.ID, account.Role, account.EmployeeID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		UserID:      account.ID,
		Role:        string(account.Role),
		EmployeeID:  account.EmployeeID,
	}, nil
}
