package constant

// Knowledge package lifecycle statuses.
const (
	PackageStatusDraft    = "DRAFT"
	PackageStatusActive   = "ACTIVE"
	PackageStatusArchived = "ARCHIVED"
)

// Document types accepted at ingestion.
const (
	DocumentTypeManual       = "MANUAL"
	DocumentTypeQuickStart   = "QUICK_START"
	DocumentTypeSafetyNotice = "SAFETY_NOTICE"
	DocumentTypeFAQ          = "FAQ"
)

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Escalation statuses.
const (
	EscalationStatusOpen     = "OPEN"
	EscalationStatusResolved = "RESOLVED"
)

// RefusalMessage is the fixed reply for blocked questions. It must never
// include generated content.
const RefusalMessage = "I can't help with that request. Bypassing or disabling safety mechanisms " +
	"is dangerous and voids the product's certifications. Please contact a qualified technician " +
	"or our support team."

// EscalationNotice is appended to answers that are escalated rather than blocked.
const EscalationNotice = "I've flagged this conversation for a human support agent, who will follow up with you shortly."
