package admin

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"chequered/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (s *DefaultAdminService) ListExperiences(ctx context.Context) ([]models.Experience, error) {
	exps, err := s.Experiences.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	sort.SliceStable(exps, func(i, j int) bool { return exps[i].Name < exps[j].Name })
	return exps, nil
}

// SaveExperience creates exp when it has no id, otherwise replaces the stored definition.
func (s *DefaultAdminService) SaveExperience(ctx context.Context, exp models.Experience) (*models.Experience, error) {
	if err := validateExperience(&exp); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if exp.ID == "" {
		exp.ID = uuid.New().String()
		exp.CreatedAt = now
	} else {
		existing, err := s.Experiences.GetByID(ctx, exp.ID)
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			exp.CreatedAt = now
		case err != nil:
			return nil, fmt.Errorf("failed to load experience %s: %w", exp.ID, err)
		default:
			exp.CreatedAt = existing.CreatedAt
		}
	}
	exp.UpdatedAt = now
	if exp.TimeIntervals == nil {
		exp.TimeIntervals = []models.TimeInterval{}
	}

	if err := s.Experiences.Upsert(ctx, &exp); err != nil {
		return nil, fmt.Errorf("failed to save experience %s: %w", exp.ID, err)
	}
	s.logger().Info("experience saved", zap.String("experienceId", exp.ID), zap.String("name", exp.Name))
	return &exp, nil
}

func (s *DefaultAdminService) DeleteExperience(ctx context.Context, id string) error {
	err := s.Experiences.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrExperienceNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete experience %s: %w", id, err)
	}
	s.logger().Info("experience deleted", zap.String("experienceId", id))
	return nil
}

func (s *DefaultAdminService) SetExperienceActive(ctx context.Context, id string, active bool) (*models.Experience, error) {
	exp, err := s.Experiences.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrExperienceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load experience %s: %w", id, err)
	}
	exp.IsActive = active
	exp.UpdatedAt = s.now().UTC()
	if err := s.Experiences.Upsert(ctx, exp); err != nil {
		return nil, fmt.Errorf("failed to save experience %s: %w", id, err)
	}
	s.logger().Info("experience activity changed", zap.String("experienceId", id), zap.Bool("active", active))
	return exp, nil
}
