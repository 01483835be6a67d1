package experienceRepo

import (
	"context"
	"fmt"
	"sync"

	"chequered/models"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cachedExperienceRepo keeps recently read experiences in memory. Slot
// generation reads the same definition on every availability request.
type cachedExperienceRepo struct {
	ExperienceRepository
	cache *lru.Cache[string, models.Experience]

	// gen moves on every write; a read only fills the cache if no write
	// started or finished while it was loading.
	mu  sync.Mutex
	gen uint64
}

// NewCachedExperienceRepo wraps inner with an LRU cache of the given size.
// Writes through the wrapper invalidate the cached entry.
func NewCachedExperienceRepo(inner ExperienceRepository, size int) (ExperienceRepository, error) {
	if size <= 0 {
		return inner, nil
	}
	cache, err := lru.New[string, models.Experience](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create experience cache: %w", err)
	}
	return &cachedExperienceRepo{ExperienceRepository: inner, cache: cache}, nil
}

func (r *cachedExperienceRepo) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	if exp, ok := r.cache.Get(id); ok {
		return cloneExperience(exp), nil
	}
	r.mu.Lock()
	gen := r.gen
	r.mu.Unlock()

	exp, err := r.ExperienceRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if r.gen == gen {
		r.cache.Add(id, *cloneExperience(*exp))
	}
	r.mu.Unlock()
	return exp, nil
}

// invalidate drops id (or everything when id is empty) and starts a new generation.
func (r *cachedExperienceRepo) invalidate(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	if id == "" {
		r.cache.Purge()
		return
	}
	r.cache.Remove(id)
}

func (r *cachedExperienceRepo) Upsert(ctx context.Context, exp *models.Experience) error {
	r.invalidate(exp.ID)
	defer r.invalidate(exp.ID)
	return r.ExperienceRepository.Upsert(ctx, exp)
}

func (r *cachedExperienceRepo) Delete(ctx context.Context, id string) error {
	r.invalidate(id)
	defer r.invalidate(id)
	return r.ExperienceRepository.Delete(ctx, id)
}

func (r *cachedExperienceRepo) DeleteAll(ctx context.Context) error {
	r.invalidate("")
	defer r.invalidate("")
	return r.ExperienceRepository.DeleteAll(ctx)
}

// cloneExperience copies the interval slice so callers cannot mutate cached state.
func cloneExperience(exp models.Experience) *models.Experience {
	out := exp
	out.TimeIntervals = append([]models.TimeInterval(nil), exp.TimeIntervals...)
	return &out
}
