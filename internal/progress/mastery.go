package progress

// MasteryLevel is derived from the running average of an algorithm's quiz
// scores. It is never stored; only the score history is.
type MasteryLevel int

const (
	MasteryNone MasteryLevel = iota
	MasteryBronze
	MasterySilver
	MasteryGold
)

// Average score thresholds (0-100) for each mastery level.
const (
	BronzeThreshold = 60.0
	SilverThreshold = 80.0
	GoldThreshold   = 95.0
)

// MasteryFor maps an average quiz score to its mastery level.
func MasteryFor(avg float64) MasteryLevel {
	switch {
	case avg >= GoldThreshold:
		return MasteryGold
	case avg >= SilverThreshold:
		return MasterySilver
	case avg >= BronzeThreshold:
		return MasteryBronze
	default:
		return MasteryNone
	}
}

func (m MasteryLevel) String() string {
	switch m {
	case MasteryBronze:
		return "bronze"
	case MasterySilver:
		return "silver"
	case MasteryGold:
		return "gold"
	default:
		return "none"
	}
}

// DisplayName returns a human-readable label.
func (m MasteryLevel) DisplayName() string {
	switch m {
	case MasteryBronze:
		return "Bronze"
	case MasterySilver:
		return "Silver"
	case MasteryGold:
		return "Gold"
	default:
		return "Unranked"
	}
}

// AlgorithmMastery is the quiz history for one algorithm.
type AlgorithmMastery struct {
	QuizScores []float64
}

// Average returns the mean quiz score, or 0 with no scores.
func (m *AlgorithmMastery) Average() float64 {
	if m == nil || len(m.QuizScores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range m.QuizScores {
		sum += s
	}
	return sum / float64(len(m.QuizScores))
}

// Level returns the mastery level for the current history.
func (m *AlgorithmMastery) Level() MasteryLevel {
	if m == nil || len(m.QuizScores) == 0 {
		return MasteryNone
	}
	return MasteryFor(m.Average())
}
