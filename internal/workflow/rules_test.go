package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewardAmount(t *testing.T) {
	tests := []struct {
		name        string
		level       CrimeLevel
		dangerScore int
		want        int64
	}{
		{name: "critical crime, max danger", level: CrimeCritical, dangerScore: 10, want: 4 * 10 * 20_000_000},
		{name: "major crime, mid danger", level: CrimeMajor, dangerScore: 5, want: 3 * 5 * 20_000_000},
		{name: "minor crime, low danger", level: CrimeMinor, dangerScore: 1, want: 1 * 1 * 20_000_000},
		{name: "zero danger floors at one", level: CrimeModerate, dangerScore: 0, want: 2 * 1 * 20_000_000},
		{name: "invalid level pays nothing", level: CrimeLevel(7), dangerScore: 5, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, RewardAmount(tt.level, tt.dangerScore))
		})
	}
}

func TestRequiresChiefApproval(t *testing.T) {
	require.True(t, RequiresChiefApproval(CrimeCritical, CaptainGuilty))
	require.True(t, RequiresChiefApproval(CrimeMajor, CaptainGuilty))
	require.False(t, RequiresChiefApproval(CrimeModerate, CaptainGuilty))
	require.False(t, RequiresChiefApproval(CrimeMinor, CaptainGuilty))
	require.False(t, RequiresChiefApproval(CrimeCritical, CaptainNotGuilty))
	require.False(t, RequiresChiefApproval(CrimeCritical, CaptainNeedsMoreInvestigation))
}

func TestBailEligible(t *testing.T) {
	require.False(t, BailEligible(CrimeCritical))
	require.False(t, BailEligible(CrimeMajor))
	require.True(t, BailEligible(CrimeModerate))
	require.True(t, BailEligible(CrimeMinor))
}

func TestAverageRating(t *testing.T) {
	require.InDelta(t, 8.5, AverageRating(9, 8), 0.0001)
	require.InDelta(t, 8.5, AverageRating(8, 9), 0.0001)
	require.InDelta(t, 1.0, AverageRating(1, 1), 0.0001)
}

func TestValidateVerdict(t *testing.T) {
	longReasoning := strings.Repeat("the evidence is conclusive ", 3)
	tests := []struct {
		name        string
		decision    TrialDecision
		reasoning   string
		title       string
		description string
		wantField   string
	}{
		{
			name:        "valid guilty verdict",
			decision:    TrialGuilty,
			reasoning:   longReasoning,
			title:       "imprisonment",
			description: "five years in the provincial penitentiary",
		},
		{
			name:      "valid innocent verdict needs no punishment",
			decision:  TrialInnocent,
			reasoning: longReasoning,
		},
		{
			name:      "short reasoning",
			decision:  TrialInnocent,
			reasoning: "not guilty",
			wantField: "reasoning",
		},
		{
			name:        "guilty without punishment title",
			decision:    TrialGuilty,
			reasoning:   longReasoning,
			title:       "jail",
			description: "five years in the provincial penitentiary",
			wantField:   "punishment_title",
		},
		{
			name:        "guilty with short punishment description",
			decision:    TrialGuilty,
			reasoning:   longReasoning,
			title:       "imprisonment",
			description: "five years",
			wantField:   "punishment_description",
		},
		{
			name:      "unknown decision",
			decision:  TrialDecision("undecided"),
			reasoning: longReasoning,
			wantField: "decision",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateVerdict(tt.decision, tt.reasoning, tt.title, tt.description)

			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}
