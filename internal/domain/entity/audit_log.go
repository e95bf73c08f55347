package entity

// Audit actions
const (
	AuditActionPatientRegister = "patient.register"
	AuditActionPatientLogin    = "patient.login"
	AuditActionPatientLogout   = "patient.logout"
	AuditActionProfileUpdate   = "profile.update"
	AuditActionPatientUpdate   = "patient.update"
	AuditActionPatientDelete   = "patient.delete"
	AuditActionPatientLink     = "patient.link"
	AuditActionPatientUnlink   = "patient.unlink"
	AuditActionRatingSubmit    = "rating.submit"
	AuditActionCriterionImport = "criterion.import"
)
