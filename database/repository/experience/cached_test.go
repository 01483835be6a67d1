package experienceRepo

import (
	"context"
	"sync"
	"testing"

	"chequered/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type countingRepo struct {
	ExperienceRepository
	items map[string]models.Experience
	reads int
}

func (r *countingRepo) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	r.reads++
	e, ok := r.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &e, nil
}

func (r *countingRepo) Upsert(ctx context.Context, exp *models.Experience) error {
	r.items[exp.ID] = *exp
	return nil
}

func (r *countingRepo) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *countingRepo) DeleteAll(ctx context.Context) error {
	r.items = map[string]models.Experience{}
	return nil
}

func newCounting() *countingRepo {
	return &countingRepo{items: map[string]models.Experience{
		"vr": {ID: "vr", Name: "VR Experience", TimeIntervals: []models.TimeInterval{{StartTime: "09:30", EndTime: "15:30"}}},
	}}
}

func TestCachedRepoServesRepeatReads(t *testing.T) {
	inner := newCounting()
	repo, err := NewCachedExperienceRepo(inner, 8)
	if err != nil {
		t.Fatalf("NewCachedExperienceRepo: %v", err)
	}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := repo.GetByID(ctx, "vr"); err != nil {
			t.Fatalf("GetByID: %v", err)
		}
	}
	if inner.reads != 1 {
		t.Fatalf("inner reads = %d, want 1", inner.reads)
	}

	// callers must not be able to mutate the cached copy
	exp, _ := repo.GetByID(ctx, "vr")
	exp.TimeIntervals[0].StartTime = "00:00"
	again, _ := repo.GetByID(ctx, "vr")
	if again.TimeIntervals[0].StartTime != "09:30" {
		t.Fatal("cached experience was mutated through a returned value")
	}
}

func TestCachedRepoInvalidatesOnWrite(t *testing.T) {
	inner := newCounting()
	repo, _ := NewCachedExperienceRepo(inner, 8)
	ctx := context.Background()

	_, _ = repo.GetByID(ctx, "vr")
	if err := repo.Upsert(ctx, &models.Experience{ID: "vr", Name: "VR Experience v2"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	exp, _ := repo.GetByID(ctx, "vr")
	if exp.Name != "VR Experience v2" {
		t.Fatalf("name = %q after update", exp.Name)
	}

	_ = repo.DeleteAll(ctx)
	if _, err := repo.GetByID(ctx, "vr"); err != mongo.ErrNoDocuments {
		t.Fatalf("err = %v after DeleteAll, want ErrNoDocuments", err)
	}
}

func TestCachedRepoDisabled(t *testing.T) {
	inner := newCounting()
	repo, err := NewCachedExperienceRepo(inner, 0)
	if err != nil {
		t.Fatalf("NewCachedExperienceRepo: %v", err)
	}
	if repo != ExperienceRepository(inner) {
		t.Fatal("size 0 should return the inner repository")
	}
}

// slowWriteRepo parks Upsert until release is closed, then stores.
type slowWriteRepo struct {
	ExperienceRepository
	mu      sync.Mutex
	items   map[string]models.Experience
	entered chan struct{}
	release chan struct{}
}

func (r *slowWriteRepo) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &e, nil
}

func (r *slowWriteRepo) Upsert(ctx context.Context, exp *models.Experience) error {
	close(r.entered)
	<-r.release
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[exp.ID] = *exp
	return nil
}

func TestCachedRepoReadDuringWriteIsNotCached(t *testing.T) {
	inner := &slowWriteRepo{
		items:   map[string]models.Experience{"vr": {ID: "vr", IsActive: true}},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	repo, _ := NewCachedExperienceRepo(inner, 8)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- repo.Upsert(ctx, &models.Experience{ID: "vr", IsActive: false}) }()
	<-inner.entered

	during, err := repo.GetByID(ctx, "vr")
	if err != nil || !during.IsActive {
		t.Fatalf("read during write = %+v, %v; want the stored active experience", during, err)
	}
	close(inner.release)
	if err := <-done; err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	after, err := repo.GetByID(ctx, "vr")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if after.IsActive {
		t.Fatal("cache kept serving the experience as it was before the write")
	}
}
