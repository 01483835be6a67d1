// File: database/repository/experience/crud.go
package experienceRepo

import (
	"context"
	"fmt"
	"time"

	"chequered/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoExperienceRepo) List(ctx context.Context) ([]models.Experience, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer cursor.Close(ctx)

	exps := []models.Experience{}
	if err := cursor.All(ctx, &exps); err != nil {
		return nil, fmt.Errorf("failed to decode experiences: %w", err)
	}
	return exps, nil
}

func (r *mongoExperienceRepo) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exp models.Experience
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&exp); err != nil {
		return nil, err
	}
	return &exp, nil
}

func (r *mongoExperienceRepo) Upsert(ctx context.Context, exp *models.Experience) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": exp.ID}, exp, opts); err != nil {
		return fmt.Errorf("failed to save experience %s: %w", exp.ID, err)
	}
	return nil
}

func (r *mongoExperienceRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoExperienceRepo) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}
