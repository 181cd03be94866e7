package profile

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"reflecta-be/internal/apperror"
	"reflecta-be/internal/constant"
	"reflecta-be/internal/entity"
	"reflecta-be/internal/repository/contract"
	"reflecta-be/internal/repository/specification"
)

// Source yields an assembled persona by name. Both Loader and
// CachedLoader satisfy it.
type Source interface {
	Load(ctx context.Context, name string) (*entity.Profile, error)
}

// Loader assembles a persona from its stored parts. The profile row and
// its metadata row are both mandatory; reactions are optional flavor.
type Loader struct {
	profileRepo  contract.ProfileRepository
	reactionRepo contract.ReactionRepository
}

func NewLoader(profileRepo contract.ProfileRepository, reactionRepo contract.ReactionRepository) *Loader {
	return &Loader{
		profileRepo:  profileRepo,
		reactionRepo: reactionRepo,
	}
}

func (l *Loader) Load(ctx context.Context, name string) (*entity.Profile, error) {
	prof, err := l.profileRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, apperror.NotFound("profile")
	}

	meta, err := l.profileRepo.FindMetadata(ctx, name)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, apperror.NotFound("profile metadata")
	}
	prof.Metadata = *meta

	reactions, err := l.reactionRepo.FindAll(ctx,
		specification.ByProfile{Profile: name},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return nil, err
	}
	prof.Reactions = groupByRarity(reactions)

	return prof, nil
}

func groupByRarity(reactions []*entity.Reaction) entity.ReactionSet {
	var set entity.ReactionSet
	for _, r := range reactions {
		switch r.Rarity {
		case constant.ReactionRarityCommon:
			set.Common = append(set.Common, r.Reaction)
		case constant.ReactionRarityTypical:
			set.Typical = append(set.Typical, r.Reaction)
		case constant.ReactionRarityRare:
			set.Rare = append(set.Rare, r.Reaction)
		}
	}
	return set
}

// CachedLoader wraps a Loader with a short-lived in-memory cache so a
// burst of turns against the same persona does not refetch it.
type CachedLoader struct {
	inner *Loader
	cache *cache.Cache
}

func NewCachedLoader(inner *Loader, ttl time.Duration) *CachedLoader {
	return &CachedLoader{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedLoader) Load(ctx context.Context, name string) (*entity.Profile, error) {
	if cached, found := c.cache.Get(name); found {
		return cached.(*entity.Profile), nil
	}
	prof, err := c.inner.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	c.cache.Set(name, prof, cache.DefaultExpiration)
	return prof, nil
}

func (c *CachedLoader) Invalidate(name string) {
	c.cache.Delete(name)
}
