package auth

import "context"

// AuthService is the identity collaborator: it verifies credentials and
// issues access tokens carrying user_id, role and employee_id claims.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
