// Package persistence provides GORM-backed store implementations.
package persistence

import (
	"fmt"

	"github.com/gitschema/gitschema/internal/database"
)

// AutoMigrate creates or updates the schema for every persisted model.
func AutoMigrate(db database.Database) error {
	models := []any{
		&ProjectModel{},
		&EnvironmentModel{},
		&InstanceModel{},
		&DatabaseModel{},
		&PolicyModel{},
		&RepositoryModel{},
		&PipelineModel{},
		&StageModel{},
		&TaskModel{},
		&IssueModel{},
		&ActivityModel{},
	}
	if err := db.GORM().AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
