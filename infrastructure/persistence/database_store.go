package persistence

import (
	"context"
	"fmt"

	"github.com/gitschema/gitschema/domain/project"
	"github.com/gitschema/gitschema/internal/database"
)

// DatabaseStore implements project.DatabaseStore using GORM. Lookups
// hydrate each database with its instance and environment so the resolver
// can group candidates by environment without extra round trips.
type DatabaseStore struct {
	db database.Database
}

// NewDatabaseStore creates a new DatabaseStore.
func NewDatabaseStore(db database.Database) DatabaseStore {
	return DatabaseStore{db: db}
}

// FindByProjectAndName returns every database with the given name owned by
// the project, across all environments.
func (s DatabaseStore) FindByProjectAndName(ctx context.Context, projectID int64, name string) ([]project.Database, error) {
	var models []DatabaseModel
	result := s.db.Session(ctx).
		Where("project_id = ? AND name = ?", projectID, name).
		Order("id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("find databases: %w", result.Error)
	}
	if len(models) == 0 {
		return nil, nil
	}

	instances, err := s.instancesByID(ctx, models)
	if err != nil {
		return nil, err
	}

	databases := make([]project.Database, 0, len(models))
	for _, m := range models {
		instance, ok := instances[m.InstanceID]
		if !ok {
			return nil, fmt.Errorf("database %d references missing instance %d", m.ID, m.InstanceID)
		}
		databases = append(databases, project.ReconstructDatabase(m.ID, m.ProjectID, instance, m.Name))
	}
	return databases, nil
}

// instancesByID loads the instances (with environments) referenced by the
// given database models.
func (s DatabaseStore) instancesByID(ctx context.Context, models []DatabaseModel) (map[int64]project.Instance, error) {
	ids := make([]int64, 0, len(models))
	seen := map[int64]bool{}
	for _, m := range models {
		if !seen[m.InstanceID] {
			seen[m.InstanceID] = true
			ids = append(ids, m.InstanceID)
		}
	}

	var instanceModels []InstanceModel
	if err := s.db.Session(ctx).Where("id IN ?", ids).Find(&instanceModels).Error; err != nil {
		return nil, fmt.Errorf("find instances: %w", err)
	}

	envIDs := make([]int64, 0, len(instanceModels))
	for _, im := range instanceModels {
		envIDs = append(envIDs, im.EnvironmentID)
	}
	var envModels []EnvironmentModel
	if err := s.db.Session(ctx).Where("id IN ?", envIDs).Find(&envModels).Error; err != nil {
		return nil, fmt.Errorf("find environments: %w", err)
	}

	environments := make(map[int64]project.Environment, len(envModels))
	for _, em := range envModels {
		environments[em.ID] = project.ReconstructEnvironment(em.ID, em.Name, em.DisplayOrder)
	}

	instances := make(map[int64]project.Instance, len(instanceModels))
	for _, im := range instanceModels {
		env, ok := environments[im.EnvironmentID]
		if !ok {
			return nil, fmt.Errorf("instance %d references missing environment %d", im.ID, im.EnvironmentID)
		}
		instances[im.ID] = project.ReconstructInstance(im.ID, env, im.Name, im.Host, im.Port)
	}
	return instances, nil
}

// Save creates a database record.
func (s DatabaseStore) Save(ctx context.Context, d project.Database) (project.Database, error) {
	model := DatabaseModel{
		ID:         d.ID(),
		ProjectID:  d.ProjectID(),
		InstanceID: d.Instance().ID(),
		Name:       d.Name(),
	}
	if err := s.db.Session(ctx).Save(&model).Error; err != nil {
		return project.Database{}, fmt.Errorf("save database: %w", err)
	}
	return project.ReconstructDatabase(model.ID, model.ProjectID, d.Instance(), model.Name), nil
}

// SaveEnvironment creates an environment.
func (s DatabaseStore) SaveEnvironment(ctx context.Context, e project.Environment) (project.Environment, error) {
	model := EnvironmentModel{ID: e.ID(), Name: e.Name(), DisplayOrder: e.Order()}
	if err := s.db.Session(ctx).Save(&model).Error; err != nil {
		return project.Environment{}, fmt.Errorf("save environment: %w", err)
	}
	return project.ReconstructEnvironment(model.ID, model.Name, model.DisplayOrder), nil
}

// SaveInstance creates an instance.
func (s DatabaseStore) SaveInstance(ctx context.Context, i project.Instance) (project.Instance, error) {
	model := InstanceModel{
		ID:            i.ID(),
		EnvironmentID: i.EnvironmentID(),
		Name:          i.Name(),
		Host:          i.Host(),
		Port:          i.Port(),
	}
	if err := s.db.Session(ctx).Save(&model).Error; err != nil {
		return project.Instance{}, fmt.Errorf("save instance: %w", err)
	}
	return project.ReconstructInstance(model.ID, i.Environment(), model.Name, model.Host, model.Port), nil
}
