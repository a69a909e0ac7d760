package mock

import (
	"context"
	"eshop-client/internal/domain"
	"eshop-client/pkg/logger"
	"eshop-client/pkg/utils"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// userNamespace derives stable user ids from user names.
var userNamespace = uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")

// Identity stands in for the identity server: it issues tokens for any user
// name and resolves them back to user info.
type Identity struct {
	signer *utils.JWTSigner
	expiry time.Duration
}

var _ domain.UserService = (*Identity)(nil)

func NewIdentity(secret string, expiry time.Duration) (*Identity, error) {
	signer, err := utils.NewJWTSigner(secret)
	if err != nil {
		return nil, err
	}
	return &Identity{signer: signer, expiry: expiry}, nil
}

// Login issues a token for username. The same name always maps to the same
// user id, so baskets survive a re-login.
func (i *Identity) Login(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		username = "demouser"
	}
	return i.signer.Generate(utils.Claims{
		UserID:            UserIDFor(username),
		Name:              username,
		Email:             username + "@eshop.local",
		PreferredUsername: username,
	}, i.expiry)
}

func (i *Identity) GetUserInfo(ctx context.Context, authToken string) (*domain.UserInfo, error) {
	if authToken == "" {
		return nil, domain.ErrNotAuthenticated
	}
	claims, err := i.signer.Validate(authToken)
	if err != nil {
		logger.WithContext(ctx).Debug().Err(err).Msg("Mock identity rejected token")
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return &domain.UserInfo{
		UserID:            claims.UserID,
		Name:              claims.Name,
		Email:             claims.Email,
		PreferredUsername: claims.PreferredUsername,
	}, nil
}

func UserIDFor(username string) string {
	return uuid.NewSHA1(userNamespace, []byte(username)).String()
}
