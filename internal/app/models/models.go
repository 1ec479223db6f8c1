package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleParent  RoleType = "PARENT"
)

// ApplicationType is the admission plan an application is filed under.
type ApplicationType string

const (
	TypeEarlyDecision    ApplicationType = "EARLY_DECISION"
	TypeEarlyAction      ApplicationType = "EARLY_ACTION"
	TypeRegularDecision  ApplicationType = "REGULAR_DECISION"
	TypeRollingAdmission ApplicationType = "ROLLING_ADMISSION"
)

// ValidApplicationType reports whether t is a known application plan.
func ValidApplicationType(t ApplicationType) bool {
	switch t {
	case TypeEarlyDecision, TypeEarlyAction, TypeRegularDecision, TypeRollingAdmission:
		return true
	}
	return false
}

// ApplicationStatus tracks an application through its lifecycle. Any state
// is reachable from any other; the owning student drives every transition.
type ApplicationStatus string

const (
	StatusNotStarted       ApplicationStatus = "NOT_STARTED"
	StatusInProgress       ApplicationStatus = "IN_PROGRESS"
	StatusSubmitted        ApplicationStatus = "SUBMITTED"
	StatusUnderReview      ApplicationStatus = "UNDER_REVIEW"
	StatusDecisionReceived ApplicationStatus = "DECISION_RECEIVED"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusSubmitted, StatusUnderReview, StatusDecisionReceived:
		return true
	}
	return false
}

// DecisionType is the admission outcome once a decision is received.
type DecisionType string

const (
	DecisionAccepted   DecisionType = "ACCEPTED"
	DecisionRejected   DecisionType = "REJECTED"
	DecisionWaitlisted DecisionType = "WAITLISTED"
	DecisionDeferred   DecisionType = "DEFERRED"
)

// ValidDecisionType reports whether d is a known admission outcome.
func ValidDecisionType(d DecisionType) bool {
	switch d {
	case DecisionAccepted, DecisionRejected, DecisionWaitlisted, DecisionDeferred:
		return true
	}
	return false
}

// RequirementType classifies a checklist item under an application.
type RequirementType string

const (
	RequirementEssay           RequirementType = "ESSAY"
	RequirementRecommendation  RequirementType = "RECOMMENDATION_LETTER"
	RequirementTranscript      RequirementType = "TRANSCRIPT"
	RequirementTestScores      RequirementType = "TEST_SCORES"
	RequirementPortfolio       RequirementType = "PORTFOLIO"
	RequirementInterview       RequirementType = "INTERVIEW"
	RequirementSupplemental    RequirementType = "SUPPLEMENTAL_MATERIALS"
	RequirementFinancialAid    RequirementType = "FINANCIAL_AID"
	RequirementApplicationForm RequirementType = "APPLICATION_FORM"
)

// ValidRequirementType reports whether t is a known checklist item kind.
func ValidRequirementType(t RequirementType) bool {
	switch t {
	case RequirementEssay, RequirementRecommendation, RequirementTranscript,
		RequirementTestScores, RequirementPortfolio, RequirementInterview,
		RequirementSupplemental, RequirementFinancialAid, RequirementApplicationForm:
		return true
	}
	return false
}

// RequirementStatus tracks a checklist item's progress.
type RequirementStatus string

const (
	RequirementNotStarted RequirementStatus = "NOT_STARTED"
	RequirementInProgress RequirementStatus = "IN_PROGRESS"
	RequirementCompleted  RequirementStatus = "COMPLETED"
	RequirementSubmitted  RequirementStatus = "SUBMITTED"
)

// ValidRequirementStatus reports whether s is a known requirement status.
func ValidRequirementStatus(s RequirementStatus) bool {
	switch s {
	case RequirementNotStarted, RequirementInProgress, RequirementCompleted, RequirementSubmitted:
		return true
	}
	return false
}

// DocumentType classifies an uploaded document.
type DocumentType string

const (
	DocTranscript        DocumentType = "TRANSCRIPT"
	DocEssay             DocumentType = "ESSAY"
	DocPersonalStatement DocumentType = "PERSONAL_STATEMENT"
	DocRecommendation    DocumentType = "RECOMMENDATION_LETTER"
	DocTestScores        DocumentType = "TEST_SCORES"
	DocResume            DocumentType = "RESUME"
	DocPortfolio         DocumentType = "PORTFOLIO"
	DocFinancialAid      DocumentType = "FINANCIAL_AID"
	DocOther             DocumentType = "OTHER"
)

// ValidDocumentType reports whether t is a known document classification.
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocTranscript, DocEssay, DocPersonalStatement, DocRecommendation,
		DocTestScores, DocResume, DocPortfolio, DocFinancialAid, DocOther:
		return true
	}
	return false
}
