package persistence

import (
	"context"
	"fmt"

	"github.com/gitschema/gitschema/domain/issue"
	"github.com/gitschema/gitschema/internal/database"
)

// ActivityStore implements issue.ActivityStore using GORM.
type ActivityStore struct {
	database.Repository[issue.Activity, ActivityModel]
}

// NewActivityStore creates a new ActivityStore.
func NewActivityStore(db database.Database) ActivityStore {
	return ActivityStore{
		Repository: database.NewRepository[issue.Activity, ActivityModel](db, ActivityMapper{}, "activity"),
	}
}

// Create records an audit activity.
func (s ActivityStore) Create(ctx context.Context, create issue.ActivityCreate) (issue.Activity, error) {
	model := ActivityModel{
		CreatorID:   create.CreatorID,
		ContainerID: create.ContainerID,
		Type:        string(create.Type),
		Level:       string(create.Level),
		Comment:     create.Comment,
		Payload:     create.Payload,
	}
	if err := s.DB(ctx).Create(&model).Error; err != nil {
		return issue.Activity{}, fmt.Errorf("create activity: %w", err)
	}
	return ActivityMapper{}.ToDomain(model), nil
}
