package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSponsorshipTransitions(t *testing.T) {
	tests := []struct {
		from    SponsorshipStatus
		to      SponsorshipStatus
		allowed bool
	}{
		{SponsorshipPending, SponsorshipActive, true},
		{SponsorshipPending, SponsorshipDeclined, true},
		{SponsorshipPending, SponsorshipCompleted, false},
		{SponsorshipActive, SponsorshipCompleted, true},
		{SponsorshipActive, SponsorshipDeclined, false},
		{SponsorshipActive, SponsorshipPending, false},
		{SponsorshipCompleted, SponsorshipActive, false},
		{SponsorshipDeclined, SponsorshipActive, false},
	}

	for _, tt := range tests {
		deal := &Sponsorship{Status: tt.from}
		err := deal.Transition(tt.to)
		if tt.allowed {
			assert.NoError(t, err, "%s -> %s should be allowed", tt.from, tt.to)
			assert.Equal(t, tt.to, deal.Status)
		} else {
			assert.Error(t, err, "%s -> %s should be rejected", tt.from, tt.to)
			assert.Equal(t, tt.from, deal.Status, "a rejected transition must not change status")
		}
	}
}
