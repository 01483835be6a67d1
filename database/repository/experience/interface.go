// File: database/repository/experience/interface.go
package experienceRepo

import (
	"chequered/database"
	"chequered/models"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// ExperienceRepository persists experience definitions. Lookups of a missing
// experience return mongo.ErrNoDocuments.
type ExperienceRepository interface {
	List(ctx context.Context) ([]models.Experience, error)
	GetByID(ctx context.Context, id string) (*models.Experience, error)
	Upsert(ctx context.Context, exp *models.Experience) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	EnsureIndexes(ctx context.Context) error
}

type mongoExperienceRepo struct {
	coll *mongo.Collection
}

// NewMongoExperienceRepo constructs a new MongoDB ExperienceRepository.
func NewMongoExperienceRepo() ExperienceRepository {
	return &mongoExperienceRepo{
		coll: database.Database().Collection("experiences"),
	}
}
