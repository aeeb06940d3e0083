package persistence

import (
	"context"
	"fmt"

	"github.com/gitschema/gitschema/domain/store"
	"github.com/gitschema/gitschema/domain/vcs"
	"github.com/gitschema/gitschema/internal/database"
	"gorm.io/gorm"
)

// RepositoryStore implements vcs.RepositoryStore using GORM.
type RepositoryStore struct {
	database.Repository[vcs.Repository, RepositoryModel]
}

// NewRepositoryStore creates a new RepositoryStore.
func NewRepositoryStore(db database.Database) RepositoryStore {
	return RepositoryStore{
		Repository: database.NewRepository[vcs.Repository, RepositoryModel](db, RepositoryMapper{}, "repository"),
	}
}

// FindByWebhookEndpointID retrieves the repository configuration bound to
// a webhook endpoint. Exactly one configuration exists per endpoint ID.
func (s RepositoryStore) FindByWebhookEndpointID(ctx context.Context, endpointID string) (vcs.Repository, error) {
	return s.FindOne(ctx, store.WithCondition("webhook_endpoint_id", endpointID))
}

// Save creates or updates a repository configuration.
func (s RepositoryStore) Save(ctx context.Context, r vcs.Repository) (vcs.Repository, error) {
	model := s.Mapper().ToModel(r)

	var result *gorm.DB
	if r.ID() == 0 {
		result = s.DB(ctx).Create(&model)
	} else {
		result = s.DB(ctx).Save(&model)
	}
	if result.Error != nil {
		return vcs.Repository{}, fmt.Errorf("save repository: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}
