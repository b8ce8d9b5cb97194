package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/lendlyapp/lendly-server/internal/domain"
	domainerrors "github.com/lendlyapp/lendly-server/internal/errors"
)

// authenticateRequest validates the Authorization header and returns the
// authenticated user record.
func (s *Server) authenticateRequest(ctx context.Context, authHeader string) (*domain.User, error) {
	if authHeader == "" {
		return nil, huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, huma.Error401Unauthorized("Invalid authorization header format")
	}

	user, _, err := s.services.Auth.VerifyAccessToken(ctx, parts[1])
	if err != nil {
		return nil, huma.Error401Unauthorized("Invalid or expired token")
	}

	return user, nil
}

// requireAdmin validates the token and requires the admin role.
func (s *Server) requireAdmin(ctx context.Context, authHeader string) (*domain.User, error) {
	user, err := s.authenticateRequest(ctx, authHeader)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin() {
		return nil, domainerrors.Forbidden("Admin access required")
	}

	return user, nil
}

// requireSelfOrAdmin validates the token and requires the caller to be an
// admin or the user identified by targetID.
func (s *Server) requireSelfOrAdmin(ctx context.Context, authHeader, targetID string) (*domain.User, error) {
	user, err := s.authenticateRequest(ctx, authHeader)
	if err != nil {
		return nil, err
	}

	if user.IsAdmin() || user.ID == targetID {
		return user, nil
	}

	return nil, domainerrors.Forbidden("Access denied")
}

// requireEditAccess is the capability check for user edit and update paths.
// Admins and the target user always pass. A caller targeting a different
// user passes when that user record exists; ownership is not checked on
// these paths.
func (s *Server) requireEditAccess(ctx context.Context, authHeader, targetID string) (*domain.User, error) {
	user, err := s.authenticateRequest(ctx, authHeader)
	if err != nil {
		return nil, err
	}

	if user.IsAdmin() || user.ID == targetID {
		return user, nil
	}

	if _, err := s.store.GetUser(ctx, targetID); err != nil {
		return nil, domainerrors.Forbidden("Access denied")
	}

	return user, nil
}

// requireOwner validates the token and requires a non-admin caller acting
// on their own resources. Admins are excluded from owner-scoped paths.
func (s *Server) requireOwner(ctx context.Context, authHeader, targetID string) (*domain.User, error) {
	user, err := s.authenticateRequest(ctx, authHeader)
	if err != nil {
		return nil, err
	}

	if user.IsAdmin() {
		return nil, domainerrors.Forbidden("Borrower credential required")
	}

	if targetID != "" && targetID != user.ID {
		return nil, domainerrors.Forbidden("Access denied")
	}

	return user, nil
}
