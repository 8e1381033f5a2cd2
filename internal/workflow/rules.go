package workflow

// CrimeLevel classifies case severity: 0 is critical, 3 is minor.
type CrimeLevel int

const (
	CrimeCritical CrimeLevel = 0
	CrimeMajor    CrimeLevel = 1
	CrimeModerate CrimeLevel = 2
	CrimeMinor    CrimeLevel = 3
)

// Valid reports whether the level is within the modeled range.
func (l CrimeLevel) Valid() bool {
	return l >= CrimeCritical && l <= CrimeMinor
}

// rewardBase is the rial base amount of the most-wanted reward formula.
const rewardBase = 20_000_000

// crimeLevelMultipliers maps crime level 0..3 to its reward multiplier.
// More severe crimes pay more for a tip.
var crimeLevelMultipliers = [4]int64{4, 3, 2, 1}

// RewardAmount computes the public reward for an intensive-pursuit suspect:
// crime-level multiplier times danger multiplier times the base amount.
func RewardAmount(level CrimeLevel, dangerScore int) int64 {
	if !level.Valid() {
		return 0
	}
	danger := int64(dangerScore)
	if danger < 1 {
		danger = 1
	}
	return crimeLevelMultipliers[level] * danger * rewardBase
}

// MaxDangerScore bounds the 0-10 danger assessment of a suspect.
const MaxDangerScore = 10

// RequiresChiefApproval reports whether a guilty captain decision needs
// chief escalation. The two most severe crime levels always escalate.
func RequiresChiefApproval(level CrimeLevel, verdict CaptainVerdict) bool {
	return verdict == CaptainGuilty && (level == CrimeCritical || level == CrimeMajor)
}

// MinBailAmount is the smallest bail request the gate accepts, in rials.
const MinBailAmount = 1_000_000

// BailEligible reports whether the crime level allows bail at all. Critical
// and major crimes are categorically ineligible.
func BailEligible(level CrimeLevel) bool {
	return level == CrimeModerate || level == CrimeMinor
}

// Guilt rating bounds for interrogation scores.
const (
	MinGuiltRating = 1
	MaxGuiltRating = 10
)

// ValidGuiltRating reports whether the 1-10 guilt score is in range.
func ValidGuiltRating(rating int) bool {
	return rating >= MinGuiltRating && rating <= MaxGuiltRating
}

// AverageRating computes the arithmetic mean of the two guilt ratings. It is
// always computed on read, never stored.
func AverageRating(detective, sergeant int) float64 {
	return (float64(detective) + float64(sergeant)) / 2.0
}

// Verdict length requirements enforced before a trial completes.
const (
	minVerdictReasoningLen        = 30
	minPunishmentTitleLen         = 5
	minPunishmentDescriptionLen   = 20
)

// ValidateVerdict checks the judge's verdict input. A guilty verdict must
// carry a punishment with a sufficiently descriptive title and description.
func ValidateVerdict(decision TrialDecision, reasoning, punishmentTitle, punishmentDescription string) error {
	if decision != TrialGuilty && decision != TrialInnocent {
		return Invalid("decision", "must be guilty or innocent")
	}
	if len(reasoning) < minVerdictReasoningLen {
		return Invalid("reasoning", "must be at least 30 characters")
	}
	if decision == TrialGuilty {
		if len(punishmentTitle) < minPunishmentTitleLen {
			return Invalid("punishment_title", "must be at least 5 characters")
		}
		if len(punishmentDescription) < minPunishmentDescriptionLen {
			return Invalid("punishment_description", "must be at least 20 characters")
		}
	}
	return nil
}
