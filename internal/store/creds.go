package store

import (
	"fmt"
	"time"

	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/shared"
	"golang.org/x/oauth2"
)

// Credential storage keys and the fixed credential lifetime.
const (
	KeyAuthToken = "auth-token"
	KeyAuthUser  = "auth-user"

	CredentialTTL = 24 * time.Hour
)

// CredStore persists the bearer token and user record with a fixed 1-day expiry.
type CredStore struct {
	kv *KV
}

// NewCredStore creates a CredStore on the given KV store.
func NewCredStore(kv *KV) *CredStore {
	return &CredStore{kv: kv}
}

// SaveToken persists an access token. The token's Expiry is stamped with the
// credential lifetime when unset.
func (c *CredStore) SaveToken(token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", shared.ErrInvalidCredentials)
	}

	stored := *token
	if stored.Expiry.IsZero() {
		stored.Expiry = time.Now().Add(CredentialTTL)
	}

	return c.kv.Put(KeyAuthToken, &stored, CredentialTTL)
}

// LoadToken returns the persisted token.
//
// Absent, expired, or unparseable tokens return [shared.ErrNotFound] wrapped
// errors; an expired-but-readable token additionally reports [shared.ErrTokenExpired].
func (c *CredStore) LoadToken() (*oauth2.Token, error) {
	var token oauth2.Token
	if err := c.kv.Get(KeyAuthToken, &token); err != nil {
		return nil, err
	}
	if !token.Valid() {
		return nil, fmt.Errorf("%w: %w", shared.ErrNotFound, shared.ErrTokenExpired)
	}
	return &token, nil
}

// SaveUser persists the authenticated user record.
func (c *CredStore) SaveUser(user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
	}
	return c.kv.Put(KeyAuthUser, user, CredentialTTL)
}

// LoadUser returns the persisted user record.
func (c *CredStore) LoadUser() (*models.User, error) {
	var user models.User
	if err := c.kv.Get(KeyAuthUser, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Clear removes both credential keys. Clearing an empty store is a no-op.
func (c *CredStore) Clear() error {
	if err := c.kv.Delete(KeyAuthToken); err != nil {
		return err
	}
	return c.kv.Delete(KeyAuthUser)
}
