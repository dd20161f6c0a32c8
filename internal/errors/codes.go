package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps these to messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"         // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"  // wrong email/password
	AuthCodeInvalid        = "AUTH_CODE_INVALID"         // wrong or expired one-time code
	AuthResetTokenInvalid  = "AUTH_RESET_TOKEN_INVALID"  // wrong or expired reset token
	AuthResetUnavailable   = "AUTH_RESET_UNAVAILABLE"    // reset subsystem not configured
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"         // email taken
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"      // username taken

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN" // no access
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Matches (MATCH_) ====================
	MatchNotFound          = "MATCH_NOT_FOUND"           // no match for id
	MatchMissingReference  = "MATCH_MISSING_REFERENCE"   // lost or found item absent
	MatchInvalidReferences = "MATCH_INVALID_REFERENCES"  // stored match lost its item refs
	MatchInvalidDecision   = "MATCH_INVALID_DECISION"    // decision outside APPROVE/REJECT
	MatchInvalidTransition = "MATCH_INVALID_TRANSITION"  // match no longer OPEN

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
