package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAct(t *testing.T) {
	res := Resource{OwnerID: "owner-1", DelegateID: "agent-1"}

	tests := []struct {
		name    string
		subject Subject
		want    bool
	}{
		{"owner", Subject{ID: "owner-1", Role: RoleOwner}, true},
		{"delegate", Subject{ID: "agent-1", Role: RoleAgent}, true},
		{"admin", Subject{ID: "admin-1", Role: RoleAdmin}, true},
		{"other agent", Subject{ID: "agent-2", Role: RoleAgent}, false},
		{"other owner", Subject{ID: "owner-2", Role: RoleOwner}, false},
		{"buyer", Subject{ID: "buyer-1", Role: RoleBuyer}, false},
		{"anonymous", Subject{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanAct(tc.subject, res))
		})
	}
}

func TestCanAct_EmptyDelegateNeverMatches(t *testing.T) {
	res := Resource{OwnerID: "owner-1"}
	assert.False(t, CanAct(Subject{ID: "", Role: RoleAgent}, res))
	assert.False(t, CanAct(Subject{ID: "agent-1", Role: RoleAgent}, res))
}

func TestAuthorize(t *testing.T) {
	res := Resource{OwnerID: "o"}
	assert.NoError(t, Authorize(Subject{ID: "o", Role: RoleOwner}, res))
	assert.ErrorIs(t, Authorize(Subject{ID: "x", Role: RoleBuyer}, res), ErrNotOwner)
}

func TestHasRole(t *testing.T) {
	s := Subject{ID: "1", Role: RoleAgent}
	assert.True(t, HasRole(s, RoleOwner, RoleAgent))
	assert.False(t, HasRole(s, RoleAdmin))
	assert.False(t, HasRole(s))
}
