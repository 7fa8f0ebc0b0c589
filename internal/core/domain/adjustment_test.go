package domain_test

import (
	"testing"

	"github.com/finreg/adjustments_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

// The full transition table. Any from/to pair not listed here must be refused.
var allowedPairs = map[domain.AdjustmentStatus][]domain.AdjustmentStatus{
	domain.StatusDraft:     {domain.StatusPending},
	domain.StatusPending:   {domain.StatusApproved, domain.StatusRejected},
	domain.StatusApproved:  {domain.StatusProcessed, domain.StatusAnnulled},
	domain.StatusRejected:  {domain.StatusPending},
	domain.StatusProcessed: {domain.StatusAnnulled},
	domain.StatusAnnulled:  {},
}

func isAllowed(from, to domain.AdjustmentStatus) bool {
	for _, target := range allowedPairs[from] {
		if target == to {
			return true
		}
	}
	return false
}

func TestCanTransition_FullTable(t *testing.T) {
	// Enumerate every from/to pair so a table change cannot slip through.
	for _, from := range domain.AllStatuses {
		for _, to := range domain.AllStatuses {
			want := isAllowed(from, to)
			got := domain.CanTransition(from, to)
			assert.Equalf(t, want, got, "CanTransition(%s, %s)", from, to)
		}
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	assert.False(t, domain.CanTransition("BOGUS", domain.StatusPending))
	assert.False(t, domain.CanTransition(domain.StatusDraft, "BOGUS"))
}

func TestAllowedTargets(t *testing.T) {
	assert.ElementsMatch(t,
		[]domain.AdjustmentStatus{domain.StatusApproved, domain.StatusRejected},
		domain.AllowedTargets(domain.StatusPending))
	assert.Empty(t, domain.AllowedTargets(domain.StatusAnnulled))
}

func TestAllowedTargets_ReturnsCopy(t *testing.T) {
	targets := domain.AllowedTargets(domain.StatusPending)
	targets[0] = domain.StatusAnnulled
	assert.True(t, domain.CanTransition(domain.StatusPending, domain.StatusApproved))
}

func TestStatePredicates(t *testing.T) {
	tests := []struct {
		status     domain.AdjustmentStatus
		canEdit    bool
		canApprove bool
		canProcess bool
	}{
		{domain.StatusDraft, true, false, false},
		{domain.StatusPending, false, true, false},
		{domain.StatusApproved, false, false, true},
		{domain.StatusRejected, true, false, false},
		{domain.StatusProcessed, false, false, false},
		{domain.StatusAnnulled, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := domain.Adjustment{Status: tt.status}
			assert.Equal(t, tt.canEdit, a.CanEdit())
			assert.Equal(t, tt.canApprove, a.CanApprove())
			assert.Equal(t, tt.canProcess, a.CanProcess())
		})
	}
}

func TestRequiredCapability(t *testing.T) {
	cap, required := domain.RequiredCapability(domain.StatusApproved)
	assert.True(t, required)
	assert.Equal(t, domain.CapabilityApprove, cap)

	cap, required = domain.RequiredCapability(domain.StatusRejected)
	assert.True(t, required)
	assert.Equal(t, domain.CapabilityApprove, cap)

	cap, required = domain.RequiredCapability(domain.StatusProcessed)
	assert.True(t, required)
	assert.Equal(t, domain.CapabilityProcess, cap)

	// No capability encoded for PENDING or ANNULLED beyond generic write access.
	_, required = domain.RequiredCapability(domain.StatusPending)
	assert.False(t, required)
	_, required = domain.RequiredCapability(domain.StatusAnnulled)
	assert.False(t, required)
}

func TestUserHasCapability(t *testing.T) {
	approver := domain.User{Role: domain.RoleStaff, CanApprove: true}
	assert.True(t, approver.HasCapability(domain.CapabilityApprove))
	assert.False(t, approver.HasCapability(domain.CapabilityProcess))

	admin := domain.User{Role: domain.RoleAdmin}
	assert.True(t, admin.HasCapability(domain.CapabilityApprove))
	assert.True(t, admin.HasCapability(domain.CapabilityProcess))

	nobody := domain.User{Role: domain.RoleStaff}
	assert.False(t, nobody.HasCapability(domain.CapabilityApprove))
	assert.False(t, nobody.HasCapability("UNKNOWN"))
}

func TestValidStatusAndPriority(t *testing.T) {
	for _, s := range domain.AllStatuses {
		assert.True(t, domain.ValidStatus(s))
	}
	assert.False(t, domain.ValidStatus("POSTED"))

	assert.True(t, domain.ValidPriority(domain.PriorityUrgent))
	assert.False(t, domain.ValidPriority("CRITICAL"))
}

func TestInvalidTransitionError_Message(t *testing.T) {
	err := &domain.InvalidTransitionError{From: domain.StatusDraft, To: domain.StatusApproved}
	assert.EqualError(t, err, "invalid transition from DRAFT to APPROVED")
}
