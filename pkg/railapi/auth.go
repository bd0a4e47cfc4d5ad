package railapi

import (
	"context"
	"net/http"

	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/rs/zerolog/log"
)

type AuthService struct {
	client *Client
}

type UpdateProfileInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *AuthService) Register(ctx context.Context, input ctdf.RegisterInput) (*ctdf.AuthResponse, error) {
	return s.authenticate(ctx, "/auth/register", input)
}

// Login stores the returned token pair in the client's TokenStore.
func (s *AuthService) Login(ctx context.Context, input ctdf.LoginInput) (*ctdf.AuthResponse, error) {
	return s.authenticate(ctx, "/auth/login", input)
}

func (s *AuthService) authenticate(ctx context.Context, path string, input interface{}) (*ctdf.AuthResponse, error) {
	auth, err := request[ctdf.AuthResponse](ctx, s.client, http.MethodPost, path, nil, input)
	if err != nil || auth == nil {
		return auth, err
	}

	user := auth.User
	if err := s.client.tokens.Save(Session{Token: auth.Token, RefreshToken: auth.RefreshToken, User: &user}); err != nil {
		return nil, err
	}

	return auth, nil
}

// Logout always clears the local session, even if the backend call fails.
func (s *AuthService) Logout(ctx context.Context) error {
	if _, err := s.client.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		log.Debug().Err(err).Msg("Logout request failed")
	}

	return s.client.tokens.Clear()
}

func (s *AuthService) Me(ctx context.Context) (*ctdf.User, error) {
	return request[ctdf.User](ctx, s.client, http.MethodGet, "/auth/me", nil, nil)
}

func (s *AuthService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*ctdf.User, error) {
	user, err := request[ctdf.User](ctx, s.client, http.MethodPut, "/auth/me", nil, input)
	if err != nil || user == nil {
		return user, err
	}

	session, err := s.client.tokens.Load()
	if err == nil && session.Token != "" {
		session.User = user
		err = s.client.tokens.Save(session)
	}

	return user, err
}

func (s *AuthService) UpdatePreferences(ctx context.Context, preferences ctdf.UserPreferences) (string, error) {
	resp, err := request[messageResponse](ctx, s.client, http.MethodPut, "/auth/me/preferences", nil, preferences)
	if err != nil || resp == nil {
		return "", err
	}

	return resp.Message, nil
}

func (s *AuthService) RegisterFCMToken(ctx context.Context, fcmToken string) (string, error) {
	resp, err := request[messageResponse](ctx, s.client, http.MethodPost, "/auth/fcm/register", nil, map[string]string{"fcmToken": fcmToken})
	if err != nil || resp == nil {
		return "", err
	}

	return resp.Message, nil
}
