package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/slotbook/backend/internal/domain/entities"
	"github.com/slotbook/backend/internal/domain/providers"
	"github.com/slotbook/backend/internal/domain/repositories"
)

// CachedUserAdapter wraps a UserRepository with read caching for ID
// lookups. Availability checks hit the provider record on every booking
// request, so this is the hottest read path.
type CachedUserAdapter struct {
	adapter repositories.UserRepository
	cache   providers.CacheProvider
}

// NewCachedUserAdapter creates a new cached user adapter
func NewCachedUserAdapter(adapter repositories.UserRepository, cache providers.CacheProvider) repositories.UserRepository {
	return &CachedUserAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// userByIDTTL is the cache lifetime in seconds for single-user lookups.
const userByIDTTL = 300

func userCacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

// GetByID retrieves a user by ID with caching
func (a *CachedUserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	cacheKey := userCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var user entities.User
		if err := json.Unmarshal(cached, &user); err == nil {
			return &user, nil
		}
		// Unmarshal failure falls through to the database.
		log.Warn().Str("user_id", id).Msg("failed to unmarshal cached user")
	}

	user, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(user); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, userByIDTTL); err != nil {
				log.Warn().Err(err).Str("user_id", id).Msg("failed to cache user")
			}
		}
	}()

	return user, nil
}

// GetByEmail passes through; email lookups only happen on registration
// and profile update.
func (a *CachedUserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.adapter.GetByEmail(ctx, email)
}

// Create passes through
func (a *CachedUserAdapter) Create(ctx context.Context, user *entities.User) error {
	return a.adapter.Create(ctx, user)
}

// Update writes through and invalidates the cached record
func (a *CachedUserAdapter) Update(ctx context.Context, user *entities.User) error {
	if err := a.adapter.Update(ctx, user); err != nil {
		return err
	}
	if err := a.cache.Delete(ctx, userCacheKey(user.ID)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to invalidate cached user")
	}
	return nil
}
