package workflow

import (
	"log/slog"
	"strings"

	"github.com/jlaasonen/precinct/internal/errors"
)

// Role is the canonical rank of an actor. Authorization is expressed as
// "actor has capability X" through a fixed lookup table instead of matching
// role-name strings at every check site.
type Role string

const (
	RoleCitizen     Role = "citizen"
	RoleCadet       Role = "cadet"
	RoleOfficer     Role = "officer"
	RoleDetective   Role = "detective"
	RoleSergeant    Role = "sergeant"
	RoleCaptain     Role = "captain"
	RolePoliceChief Role = "police_chief"
	RoleJudge       Role = "judge"
)

// Capability names a single permitted operation family.
type Capability string

const (
	CapFileComplaint       Capability = "file_complaint"
	CapFileCrimeScene      Capability = "file_crime_scene"
	CapReviewCadetPhase    Capability = "review_cadet_phase"
	CapReviewOfficerPhase  Capability = "review_officer_phase"
	CapManageSuspects      Capability = "manage_suspects"
	CapReviewTipOfficer    Capability = "review_tip_officer"
	CapReviewTipDetective  Capability = "review_tip_detective"
	CapSubmitSuspectList   Capability = "submit_suspect_list"
	CapReviewSuspectList   Capability = "review_suspect_list"
	CapRateInterrogation   Capability = "rate_interrogation"
	CapDecideGuilt         Capability = "decide_guilt"
	CapChiefApproval       Capability = "chief_approval"
	CapCreateTrial         Capability = "create_trial"
	CapDeliverVerdict      Capability = "deliver_verdict"
	CapDecideBail          Capability = "decide_bail"
)

type capabilitySet map[Capability]struct{}

func caps(cs ...Capability) capabilitySet {
	set := make(capabilitySet, len(cs))
	for _, c := range cs {
		set[c] = struct{}{}
	}
	return set
}

// roleCapabilities is resolved once; it is the single source of truth for
// role-gated transitions.
var roleCapabilities = map[Role]capabilitySet{
	RoleCitizen: caps(CapFileComplaint),
	RoleCadet:   caps(CapFileComplaint, CapReviewCadetPhase),
	RoleOfficer: caps(CapFileComplaint, CapFileCrimeScene, CapReviewOfficerPhase, CapReviewTipOfficer),
	RoleDetective: caps(CapFileComplaint, CapFileCrimeScene, CapManageSuspects,
		CapReviewTipDetective, CapSubmitSuspectList, CapRateInterrogation),
	RoleSergeant: caps(CapFileComplaint, CapFileCrimeScene, CapManageSuspects,
		CapReviewSuspectList, CapRateInterrogation, CapDecideBail),
	RoleCaptain: caps(CapFileComplaint, CapFileCrimeScene, CapManageSuspects,
		CapReviewOfficerPhase, CapDecideGuilt, CapCreateTrial),
	RolePoliceChief: caps(CapFileComplaint, CapFileCrimeScene, CapManageSuspects,
		CapReviewOfficerPhase, CapChiefApproval),
	RoleJudge: caps(CapDeliverVerdict),
}

// rankOrder supports "rank X or above" checks for the police chain of
// command. Judges and citizens sit outside the chain.
var rankOrder = map[Role]int{
	RoleCadet:       1,
	RoleOfficer:     2,
	RoleDetective:   3,
	RoleSergeant:    4,
	RoleCaptain:     5,
	RolePoliceChief: 6,
}

// Has reports whether the role holds the given capability.
func (r Role) Has(c Capability) bool {
	_, ok := roleCapabilities[r][c]
	return ok
}

// AtLeast reports whether the role ranks at or above other in the police
// chain of command.
func (r Role) AtLeast(other Role) bool {
	rank, ok := rankOrder[r]
	if !ok {
		return false
	}
	return rank >= rankOrder[other]
}

// ParseRole converts a boundary string into a canonical Role.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := roleCapabilities[role]; !ok {
		return "", errors.New("unknown role", slog.String("role", s))
	}
	return role, nil
}
