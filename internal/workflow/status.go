package workflow

// The status enums below are the exact case-sensitive strings used at the
// boundary. Transitions not present in a transition table are
// unrepresentable; every mutation goes through CanTransition checks plus an
// optimistic status guard in the repository layer.

// CaseStatus is the lifecycle state of a case.
type CaseStatus string

const (
	CaseDraft               CaseStatus = "draft"
	CaseCadetReview         CaseStatus = "cadet_review"
	CaseOfficerReview       CaseStatus = "officer_review"
	CaseRejected            CaseStatus = "rejected"
	CaseOpen                CaseStatus = "open"
	CaseUnderInvestigation  CaseStatus = "under_investigation"
	CaseSuspectsIdentified  CaseStatus = "suspects_identified"
	CaseArrestApproved      CaseStatus = "arrest_approved"
	CaseInterrogation       CaseStatus = "interrogation"
	CaseTrialPending        CaseStatus = "trial_pending"
	CaseClosed              CaseStatus = "closed"
)

var caseTransitions = map[CaseStatus][]CaseStatus{
	CaseDraft:              {CaseCadetReview},
	CaseCadetReview:        {CaseOfficerReview, CaseDraft, CaseRejected},
	CaseOfficerReview:      {CaseOpen, CaseDraft, CaseRejected},
	CaseOpen:               {CaseUnderInvestigation},
	CaseUnderInvestigation: {CaseSuspectsIdentified},
	CaseSuspectsIdentified: {CaseArrestApproved},
	CaseArrestApproved:     {CaseInterrogation},
	CaseInterrogation:      {CaseTrialPending},
	CaseTrialPending:       {CaseClosed},
}

// CanTransition reports whether the case may move from s to next.
func (s CaseStatus) CanTransition(next CaseStatus) bool {
	for _, allowed := range caseTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further case transitions exist.
func (s CaseStatus) Terminal() bool {
	return len(caseTransitions[s]) == 0
}

// SuspectStatus is the pursuit state of a suspect.
type SuspectStatus string

const (
	SuspectUnderPursuit     SuspectStatus = "under_pursuit"
	SuspectIntensivePursuit SuspectStatus = "intensive_pursuit"
	SuspectArrested         SuspectStatus = "arrested"
	SuspectCleared          SuspectStatus = "cleared"
)

var suspectTransitions = map[SuspectStatus][]SuspectStatus{
	SuspectUnderPursuit:     {SuspectIntensivePursuit, SuspectArrested, SuspectCleared},
	SuspectIntensivePursuit: {SuspectUnderPursuit, SuspectArrested, SuspectCleared},
}

// CanTransition reports whether the suspect may move from s to next.
func (s SuspectStatus) CanTransition(next SuspectStatus) bool {
	for _, allowed := range suspectTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the suspect status is final.
func (s SuspectStatus) Terminal() bool {
	return len(suspectTransitions[s]) == 0
}

// TipStatus is the verification state of a citizen tip.
type TipStatus string

const (
	TipPending         TipStatus = "pending"
	TipOfficerApproved TipStatus = "officer_approved"
	TipApproved        TipStatus = "approved"
	TipRejected        TipStatus = "rejected"
)

// SubmissionStatus is the review state of a detective's suspect list.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// InterrogationStatus flips to submitted exactly once, when both guilt
// ratings are non-null.
type InterrogationStatus string

const (
	InterrogationPending   InterrogationStatus = "pending"
	InterrogationSubmitted InterrogationStatus = "submitted"
)

// TrialStatus is the state of a trial.
type TrialStatus string

const (
	TrialPending    TrialStatus = "pending"
	TrialInProgress TrialStatus = "in_progress"
	TrialCompleted  TrialStatus = "completed"
)

// BailStatus is the state of a bail payment.
type BailStatus string

const (
	BailPending  BailStatus = "pending"
	BailApproved BailStatus = "approved"
	BailPaid     BailStatus = "paid"
	BailRejected BailStatus = "rejected"
)

// FormationType records how a case originated.
type FormationType string

const (
	FormationComplaint  FormationType = "complaint"
	FormationCrimeScene FormationType = "crime_scene"
)

// ReviewDecision is a single reviewer verdict inside the intake gate.
type ReviewDecision string

const (
	ReviewApproved ReviewDecision = "approved"
	ReviewRejected ReviewDecision = "rejected"
)

// CaptainVerdict is the captain's decision after a submitted interrogation.
type CaptainVerdict string

const (
	CaptainGuilty                 CaptainVerdict = "guilty"
	CaptainNotGuilty              CaptainVerdict = "not_guilty"
	CaptainNeedsMoreInvestigation CaptainVerdict = "needs_more_investigation"
)

// TrialDecision is the judge's verdict.
type TrialDecision string

const (
	TrialGuilty   TrialDecision = "guilty"
	TrialInnocent TrialDecision = "innocent"
)

// RejectionThreshold is the fixed count of review rejections after which a
// case is permanently dismissed.
const RejectionThreshold = 3

// InitialCaseStatus resolves the initial lifecycle state from the formation
// type and the creator's role. A complaint enters cadet review; a crime-scene
// report by a non-chief officer enters officer review; a chief-level report
// opens directly.
func InitialCaseStatus(formation FormationType, creator Role) CaseStatus {
	if formation == FormationComplaint {
		return CaseCadetReview
	}
	if creator == RolePoliceChief {
		return CaseOpen
	}
	return CaseOfficerReview
}
