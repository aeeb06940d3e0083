package project

import "context"

// ApprovalValue is the pipeline-approval policy for one environment.
type ApprovalValue string

// ApprovalValue values.
const (
	// ApprovalManualAlways gates every task behind manual approval.
	ApprovalManualAlways ApprovalValue = "MANUAL_APPROVAL_ALWAYS"
	// ApprovalManualNever lets tasks run as soon as they are scheduled.
	ApprovalManualNever ApprovalValue = "MANUAL_APPROVAL_NEVER"
)

// ApprovalPolicy binds an ApprovalValue to an environment.
type ApprovalPolicy struct {
	environmentID int64
	value         ApprovalValue
}

// NewApprovalPolicy creates an approval policy for an environment.
func NewApprovalPolicy(environmentID int64, value ApprovalValue) ApprovalPolicy {
	return ApprovalPolicy{environmentID: environmentID, value: value}
}

// EnvironmentID returns the environment the policy applies to.
func (p ApprovalPolicy) EnvironmentID() int64 { return p.environmentID }

// Value returns the policy value.
func (p ApprovalPolicy) Value() ApprovalValue { return p.value }

// RequiresApproval reports whether tasks under this policy start gated.
// Only MANUAL_APPROVAL_NEVER opts out; every other value requires approval.
func (p ApprovalPolicy) RequiresApproval() bool {
	return p.value != ApprovalManualNever
}

// PolicyStore provides per-environment policy lookups.
type PolicyStore interface {
	// PipelineApproval returns the pipeline-approval policy for the
	// environment. Environments without a stored policy default to
	// MANUAL_APPROVAL_ALWAYS.
	PipelineApproval(ctx context.Context, environmentID int64) (ApprovalPolicy, error)
	Save(ctx context.Context, p ApprovalPolicy) (ApprovalPolicy, error)
}

// EnvironmentStore provides persistence for environments and instances.
type EnvironmentStore interface {
	SaveEnvironment(ctx context.Context, e Environment) (Environment, error)
	SaveInstance(ctx context.Context, i Instance) (Instance, error)
}
