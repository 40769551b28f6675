package controller

import (
	"context"

	"github.com/sefazor/campus-events-backend/internal/middleware"
	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/sefazor/campus-events-backend/internal/service"
)

// AuthController drives the sign-in and first-login password flow across
// the auth and organization services.
type AuthController struct {
	authService         *service.AuthService
	organizationService *service.OrganizationService
	basePath            string
}

func NewAuthController(authService *service.AuthService, organizationService *service.OrganizationService, basePath string) *AuthController {
	return &AuthController{
		authService:         authService,
		organizationService: organizationService,
		basePath:            basePath,
	}
}

// Login opens a session. Freshly provisioned accounts are sent to the
// change-password page first.
func (c *AuthController) Login(ctx context.Context, req models.LoginRequest, meta models.SessionMeta) (*models.AuthResponse, error) {
	resp, err := c.authService.SignInEmail(ctx, req.Email, req.Password, meta)
	if err != nil {
		return nil, err
	}

	resp.Redirect = c.basePath + middleware.PageDashboard
	if resp.User.IsFirstLogin {
		resp.Redirect = c.basePath + middleware.PageChangePassword
	}
	return resp, nil
}

func (c *AuthController) Logout(ctx context.Context, token string) error {
	return c.authService.SignOut(ctx, token)
}

func (c *AuthController) ChangePassword(ctx context.Context, caller *models.Principal, req models.ChangePasswordRequest) (*models.ChangePasswordResult, error) {
	result, err := c.organizationService.ChangePassword(ctx, caller, req)
	if err != nil {
		return nil, err
	}
	if result.Success {
		result.Redirect = c.basePath + middleware.PageDashboard
	}
	return result, nil
}
