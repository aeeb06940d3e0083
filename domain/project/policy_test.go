package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApprovalPolicy_RequiresApproval(t *testing.T) {
	t.Run("MANUAL_APPROVAL_NEVER opts out", func(t *testing.T) {
		p := NewApprovalPolicy(1, ApprovalManualNever)
		assert.False(t, p.RequiresApproval())
	})

	t.Run("MANUAL_APPROVAL_ALWAYS requires approval", func(t *testing.T) {
		p := NewApprovalPolicy(1, ApprovalManualAlways)
		assert.True(t, p.RequiresApproval())
	})

	t.Run("unknown values fail closed", func(t *testing.T) {
		p := NewApprovalPolicy(1, ApprovalValue("SOMETHING_ELSE"))
		assert.True(t, p.RequiresApproval())
	})
}
