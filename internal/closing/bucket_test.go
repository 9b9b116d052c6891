package closing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSituationFor_Boundaries(t *testing.T) {
	cases := []struct {
		lead float64
		want Situation
	}{
		{-40, BigDeficit},
		{-15.5, BigDeficit},
		{-15, BigDeficit}, // upper bound inclusive
		{-14.5, ModerateDeficit},
		{-6, ModerateDeficit},
		{-5.5, CloseGame},
		{0, CloseGame},
		{6, CloseGame},
		{6.5, ModerateLead},
		{15, ModerateLead},
		{15.5, BigLead},
		{40, BigLead},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, SituationFor(c.lead), "lead %.1f", c.lead)
	}
}

func TestSituationFor_PartitionsRange(t *testing.T) {
	// Every half-point lead in a plausible range maps to exactly one
	// bucket, and the bucket index never decreases as the lead grows.
	prev := BigDeficit
	for lead := -60.0; lead <= 60.0; lead += 0.5 {
		s := SituationFor(lead)
		assert.GreaterOrEqual(t, int(s), 0)
		assert.Less(t, int(s), NumSituations)
		assert.GreaterOrEqual(t, s, prev, "buckets must be monotone in the lead")
		prev = s
	}
}

func TestSituationLabels(t *testing.T) {
	labels := SituationLabels()
	assert.Len(t, labels, NumSituations)
	assert.Equal(t, "Close Game", CloseGame.String())
	assert.Equal(t, "unknown", Situation(99).String())
}
