package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/gitschema/gitschema/domain/project"
	"github.com/gitschema/gitschema/internal/database"
	"gorm.io/gorm"
)

// PolicyTypePipelineApproval is the stored policy type for pipeline
// approval.
const PolicyTypePipelineApproval = "gitschema.policy.pipeline-approval"

// PolicyStore implements project.PolicyStore using GORM.
type PolicyStore struct {
	db database.Database
}

// NewPolicyStore creates a new PolicyStore.
func NewPolicyStore(db database.Database) PolicyStore {
	return PolicyStore{db: db}
}

// PipelineApproval returns the pipeline-approval policy for an environment.
// Environments without a stored policy default to MANUAL_APPROVAL_ALWAYS:
// requiring approval is the safe default for an unconfigured environment.
func (s PolicyStore) PipelineApproval(ctx context.Context, environmentID int64) (project.ApprovalPolicy, error) {
	var model PolicyModel
	result := s.db.Session(ctx).
		Where("environment_id = ? AND type = ?", environmentID, PolicyTypePipelineApproval).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return project.NewApprovalPolicy(environmentID, project.ApprovalManualAlways), nil
		}
		return project.ApprovalPolicy{}, fmt.Errorf("find pipeline approval policy: %w", result.Error)
	}
	return project.NewApprovalPolicy(environmentID, project.ApprovalValue(model.Value)), nil
}

// Save stores the pipeline-approval policy for an environment, replacing
// any previous value.
func (s PolicyStore) Save(ctx context.Context, p project.ApprovalPolicy) (project.ApprovalPolicy, error) {
	var model PolicyModel
	result := s.db.Session(ctx).
		Where("environment_id = ? AND type = ?", p.EnvironmentID(), PolicyTypePipelineApproval).
		First(&model)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return project.ApprovalPolicy{}, fmt.Errorf("find policy: %w", result.Error)
	}

	model.EnvironmentID = p.EnvironmentID()
	model.Type = PolicyTypePipelineApproval
	model.Value = string(p.Value())
	if err := s.db.Session(ctx).Save(&model).Error; err != nil {
		return project.ApprovalPolicy{}, fmt.Errorf("save policy: %w", err)
	}
	return p, nil
}
