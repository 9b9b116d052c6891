package closing

// Situation is a bucket of Q3 lead values. The five buckets partition
// the real line: (-inf,-15], (-15,-6], (-6,6], (6,15], (15,+inf).
type Situation int

const (
	BigDeficit Situation = iota
	ModerateDeficit
	CloseGame
	ModerateLead
	BigLead

	NumSituations = 5
)

var situationLabels = [NumSituations]string{
	"Big Deficit",
	"Moderate Deficit",
	"Close Game",
	"Moderate Lead",
	"Big Lead",
}

func (s Situation) String() string {
	if s < 0 || int(s) >= NumSituations {
		return "unknown"
	}
	return situationLabels[s]
}

// SituationLabels returns the bucket labels in order.
func SituationLabels() []string {
	return situationLabels[:]
}

// SituationFor assigns a Q3 lead to its bucket. Upper bounds are
// inclusive, so the buckets are contiguous and every value maps to
// exactly one.
func SituationFor(q3Lead float64) Situation {
	switch {
	case q3Lead <= -15:
		return BigDeficit
	case q3Lead <= -6:
		return ModerateDeficit
	case q3Lead <= 6:
		return CloseGame
	case q3Lead <= 15:
		return ModerateLead
	default:
		return BigLead
	}
}
