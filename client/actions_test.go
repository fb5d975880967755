package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingActions(t *testing.T) {
	cases := []struct {
		status string
		want   []string
	}{
		{"pending", []string{ActionApprove, ActionReject}},
		{"approved", []string{ActionComplete}},
		{"completed", []string{ActionAddRating, ActionAddPenalty}},
		{"rejected", nil},
		{"cancelled", nil},
		{"no_show", nil},
		{"", nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BookingActions(tc.status), "status %q", tc.status)
	}
}

func TestPenaltyActions(t *testing.T) {
	assert.Equal(t, []string{ActionResolve}, PenaltyActions("active"))
	assert.Nil(t, PenaltyActions("resolved"))
	assert.Nil(t, PenaltyActions("expired"))
	assert.Nil(t, PenaltyActions(""))
}
