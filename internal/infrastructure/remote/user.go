package remote

import (
	"context"
	"eshop-client/internal/domain"
	"net/http"
)

// UserClient reads the token bearer's profile from the identity service.
type UserClient struct {
	client *Client
}

var _ domain.UserService = (*UserClient)(nil)

func NewUserClient(c *Client) *UserClient {
	return &UserClient{client: c}
}

func (u *UserClient) GetUserInfo(ctx context.Context, authToken string) (*domain.UserInfo, error) {
	if authToken == "" {
		return nil, domain.ErrNotAuthenticated
	}
	var info domain.UserInfo
	if err := u.client.do(ctx, http.MethodGet, "/connect/userinfo", authToken, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
