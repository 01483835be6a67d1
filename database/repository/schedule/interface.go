package scheduleRepo

import (
	"chequered/database"
	"chequered/models"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleRepository stores per-date opening overrides.
type ScheduleRepository interface {
	// GetByDate returns nil without error when the date has no override.
	GetByDate(ctx context.Context, date string) (*models.DaySchedule, error)
	ListRange(ctx context.Context, from, to string) ([]models.DaySchedule, error)
	Save(ctx context.Context, schedule *models.DaySchedule) error
	DeleteAll(ctx context.Context) error
	EnsureIndexes(ctx context.Context) error
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

func NewMongoScheduleRepo() ScheduleRepository {
	return &mongoScheduleRepo{
		coll: database.Database().Collection("schedules"),
	}
}
