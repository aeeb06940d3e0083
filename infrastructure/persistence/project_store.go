package persistence

import (
	"context"
	"fmt"

	"github.com/gitschema/gitschema/domain/project"
	"github.com/gitschema/gitschema/domain/store"
	"github.com/gitschema/gitschema/internal/database"
	"gorm.io/gorm"
)

// ProjectStore implements project.Store using GORM.
type ProjectStore struct {
	database.Repository[project.Project, ProjectModel]
}

// NewProjectStore creates a new ProjectStore.
func NewProjectStore(db database.Database) ProjectStore {
	return ProjectStore{
		Repository: database.NewRepository[project.Project, ProjectModel](db, ProjectMapper{}, "project"),
	}
}

// Get retrieves a project by ID.
func (s ProjectStore) Get(ctx context.Context, id int64) (project.Project, error) {
	return s.FindOne(ctx, store.WithID(id))
}

// Save creates or updates a project.
func (s ProjectStore) Save(ctx context.Context, p project.Project) (project.Project, error) {
	model := s.Mapper().ToModel(p)

	var result *gorm.DB
	if p.ID() == 0 {
		result = s.DB(ctx).Create(&model)
	} else {
		result = s.DB(ctx).Save(&model)
	}
	if result.Error != nil {
		return project.Project{}, fmt.Errorf("save project: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}
