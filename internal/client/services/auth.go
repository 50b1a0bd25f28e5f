package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/zheye/internal/client/models"
	"github.com/dmitrijs2005/zheye/internal/client/orchestrator"
	"github.com/dmitrijs2005/zheye/internal/client/store"
	"github.com/dmitrijs2005/zheye/internal/client/transport"
	"github.com/dmitrijs2005/zheye/internal/common"
	"github.com/dmitrijs2005/zheye/internal/logging"
)

// TokenStore is the part of the credential holder the auth service needs.
type TokenStore interface {
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// AuthService defines session operations.
//
// Contract:
//   - Login: exchange credentials for a token and persist it.
//   - FetchCurrentUser: load the session user with the attached token.
//   - LoginAndFetch: Login then FetchCurrentUser; the second step is skipped
//     when the first fails.
//   - Register: create an account (does not log in).
//   - Logout: forget the token and the session user.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	FetchCurrentUser(ctx context.Context) (models.User, error)
	LoginAndFetch(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, in models.RegisterInput) (models.User, error)
	Logout(ctx context.Context) error
}

type authService struct {
	orch   *orchestrator.Orchestrator
	store  *store.Store
	tokens TokenStore
	logger logging.Logger
}

func NewAuthService(orch *orchestrator.Orchestrator, s *store.Store, tokens TokenStore, logger logging.Logger) AuthService {
	return &authService{orch: orch, store: s, tokens: tokens, logger: logger}
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	req := &transport.Request{
		Method: http.MethodPost,
		Path:   "user/login",
		Body:   models.LoginInput{Email: email, Password: password},
	}
	_, err := orchestrator.Run(ctx, a.orch, req, func(s models.Session) error {
		return a.tokens.Set(ctx, s.Token)
	})
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	a.logger.Info(ctx, "logged in", "email", email)
	return nil
}

func (a *authService) FetchCurrentUser(ctx context.Context) (models.User, error) {
	req := &transport.Request{Method: http.MethodGet, Path: "user/current"}
	_, err := orchestrator.Run(ctx, a.orch, req, func(u models.User) error {
		a.store.SetUser(u)
		return nil
	})
	if err != nil {
		return models.User{}, fmt.Errorf("fetch current user: %w", err)
	}
	return a.store.User(), nil
}

func (a *authService) LoginAndFetch(ctx context.Context, email, password string) (models.User, error) {
	if err := a.Login(ctx, email, password); err != nil {
		return models.User{}, err
	}
	return a.FetchCurrentUser(ctx)
}

func (a *authService) Register(ctx context.Context, in models.RegisterInput) (models.User, error) {
	if in.Email == "" || in.Password == "" || in.NickName == "" {
		return models.User{}, fmt.Errorf("%w: email, password and nickname are required", common.ErrorValidation)
	}

	req := &transport.Request{Method: http.MethodPost, Path: "users", Body: in}
	u, err := orchestrator.Run[models.User](ctx, a.orch, req, nil)
	if err != nil {
		return models.User{}, fmt.Errorf("register error: %w", err)
	}
	return u, nil
}

// Logout drops the session user even when the token store fails.
func (a *authService) Logout(ctx context.Context) error {
	a.store.ResetUser()
	if err := a.tokens.Clear(ctx); err != nil {
		return err
	}
	a.logger.Info(ctx, "logged out")
	return nil
}
