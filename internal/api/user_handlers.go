package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/lendlyapp/lendly-server/internal/domain"
	"github.com/lendlyapp/lendly-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "registerUser",
		Method:        http.MethodPost,
		Path:          "/api/user/register",
		Summary:       "Register user",
		Description:   "Creates a new user account",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/user/login",
		Summary:     "User login",
		Description: "Authenticates a user and returns a bearer token",
		Tags:        []string{"Users"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/user/getAll",
		Summary:     "List users",
		Description: "Returns all registered users",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/user/get/{id}",
		Summary:     "Get user",
		Description: "Returns a user by ID",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "editUser",
		Method:      http.MethodPut,
		Path:        "/api/user/edit/{id}",
		Summary:     "Edit user",
		Description: "Updates profile fields on a user",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleEditUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePassword",
		Method:      http.MethodPut,
		Path:        "/api/user/update/password/{id}",
		Summary:     "Update password",
		Description: "Changes a user's password after verifying the old one",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdatePassword)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteUser",
		Method:      http.MethodDelete,
		Path:        "/api/user/delete/{id}",
		Summary:     "Delete user",
		Description: "Removes a user account",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteUser)
}

// === DTOs ===

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255" doc:"Full name"`
	Age      int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=150" doc:"Age in years"`
	Gender   string `json:"gender,omitempty" doc:"Gender"`
	DOB      string `json:"dob,omitempty" doc:"Date of birth"`
	Contact  string `json:"contact" validate:"required,max=20" doc:"Contact number"`
	Photo    string `json:"photo,omitempty" doc:"Profile photo URL"`
	Email    string `json:"email" validate:"required,email,max=50" doc:"Email address"`
	Password string `json:"password" validate:"required,min=6,max=255" doc:"Password"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user admin" doc:"Role: user or admin"`
}

type RegisterInput struct {
	Body RegisterRequest
}

// UserResponse contains user data in API responses. The password hash
// never leaves the service layer.
type UserResponse struct {
	ID        string    `json:"id" doc:"User ID"`
	Name      string    `json:"name" doc:"Full name"`
	Age       int       `json:"age,omitempty" doc:"Age in years"`
	Gender    string    `json:"gender,omitempty" doc:"Gender"`
	DOB       string    `json:"dob,omitempty" doc:"Date of birth"`
	Contact   string    `json:"contact" doc:"Contact number"`
	Photo     string    `json:"photo,omitempty" doc:"Profile photo URL"`
	Email     string    `json:"email" doc:"Email address"`
	Role      string    `json:"role" doc:"Role: user or admin"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

type UserOutput struct {
	Body UserResponse
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" doc:"Email address"`
	Password string `json:"password" validate:"required" doc:"Password"`
}

type LoginInput struct {
	Body          LoginRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// AuthResponse contains the bearer token and the authenticated user.
type AuthResponse struct {
	Token     string       `json:"token" doc:"PASETO bearer token"`
	TokenType string       `json:"token_type" doc:"Always Bearer"`
	User      UserResponse `json:"user" doc:"Authenticated user"`
}

type AuthOutput struct {
	Body AuthResponse
}

type ListUsersInput struct {
	Authorization string `header:"Authorization"`
}

type ListUsersResponse struct {
	Users []UserResponse `json:"users" doc:"List of users"`
}

type ListUsersOutput struct {
	Body ListUsersResponse
}

type GetUserInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
}

// EditUserRequest carries optional profile fields. Absent fields are
// left unchanged. Passwords change through the password endpoint only.
type EditUserRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=255" doc:"Full name"`
	Age     *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=150" doc:"Age in years"`
	Gender  *string `json:"gender,omitempty" doc:"Gender"`
	DOB     *string `json:"dob,omitempty" doc:"Date of birth"`
	Contact *string `json:"contact,omitempty" validate:"omitempty,min=1,max=20" doc:"Contact number"`
	Photo   *string `json:"photo,omitempty" doc:"Profile photo URL"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email,max=50" doc:"Email address"`
}

type EditUserInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
	Body          EditUserRequest
}

// UpdatePasswordRequest is the request body for a password change.
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required" doc:"Current password"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=255" doc:"New password"`
}

type UpdatePasswordInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
	Body          UpdatePasswordRequest
}

type DeleteUserInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
}

// MessageResponse contains a simple status message.
type MessageResponse struct {
	Message string `json:"message" doc:"Status message"`
}

type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*UserOutput, error) {
	user, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Name:     input.Body.Name,
		Age:      input.Body.Age,
		Gender:   input.Body.Gender,
		DOB:      input.Body.DOB,
		Contact:  input.Body.Contact,
		Photo:    input.Body.Photo,
		Email:    input.Body.Email,
		Password: input.Body.Password,
		Role:     input.Body.Role,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	ip := extractIP(input.XForwardedFor, input.XRealIP)
	if ip == "" {
		ip = "local"
	}
	if !s.loginLimiter.Allow(ip) {
		s.logger.Warn("Login rate limit exceeded", "ip", ip)
		return nil, huma.Error429TooManyRequests("Too many login attempts. Please try again later.")
	}

	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: AuthResponse{
		Token:     resp.Token,
		TokenType: "Bearer",
		User:      mapUserResponse(resp.User),
	}}, nil
}

func (s *Server) handleListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	users, err := s.services.Users.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapUserResponse(u)
	}

	return &ListUsersOutput{Body: ListUsersResponse{Users: resp}}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *GetUserInput) (*UserOutput, error) {
	if _, err := s.requireSelfOrAdmin(ctx, input.Authorization, input.ID); err != nil {
		return nil, err
	}

	user, err := s.services.Users.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}

func (s *Server) handleEditUser(ctx context.Context, input *EditUserInput) (*UserOutput, error) {
	if _, err := s.requireEditAccess(ctx, input.Authorization, input.ID); err != nil {
		return nil, err
	}

	user, err := s.services.Users.Update(ctx, input.ID, service.UpdateUserRequest{
		Name:    input.Body.Name,
		Age:     input.Body.Age,
		Gender:  input.Body.Gender,
		DOB:     input.Body.DOB,
		Contact: input.Body.Contact,
		Photo:   input.Body.Photo,
		Email:   input.Body.Email,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}

func (s *Server) handleUpdatePassword(ctx context.Context, input *UpdatePasswordInput) (*MessageOutput, error) {
	if _, err := s.requireEditAccess(ctx, input.Authorization, input.ID); err != nil {
		return nil, err
	}

	err := s.services.Users.ChangePassword(ctx, input.ID, service.ChangePasswordRequest{
		OldPassword: input.Body.OldPassword,
		NewPassword: input.Body.NewPassword,
	})
	if err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Password updated successfully"}}, nil
}

func (s *Server) handleDeleteUser(ctx context.Context, input *DeleteUserInput) (*MessageOutput, error) {
	if _, err := s.requireSelfOrAdmin(ctx, input.Authorization, input.ID); err != nil {
		return nil, err
	}

	if err := s.services.Users.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "User deleted successfully"}}, nil
}

// === Mappers ===

func mapUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Age:       u.Age,
		Gender:    u.Gender,
		DOB:       u.DOB,
		Contact:   u.Contact,
		Photo:     u.Photo,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func extractIP(xForwardedFor, xRealIP string) string {
	if xForwardedFor != "" {
		for i := 0; i < len(xForwardedFor); i++ {
			if xForwardedFor[i] == ',' {
				return xForwardedFor[:i]
			}
		}
		return xForwardedFor
	}
	return xRealIP
}
