package domain

import "context"

// UserInfo is what the identity service knows about the token bearer.
type UserInfo struct {
	UserID            string `json:"sub"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	PreferredUsername string `json:"preferred_username"`
}

type UserService interface {
	GetUserInfo(ctx context.Context, authToken string) (*UserInfo, error)
}

// SettingsService is the persisted client state. The auth token is read
// through it on every operation.
type SettingsService interface {
	AuthAccessToken() string
	SetAuthAccessToken(token string)
	UseMocks() bool
	SetUseMocks(v bool)
	Save() error
}
