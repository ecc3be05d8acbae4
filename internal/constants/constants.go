package constants

// Session
const (
	SessionCookieName = "tracker_session"
	ContextKeyUserID  = "user_id"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AppliedColumnTitle is the column title matched (case-insensitively) to
// detect the "Applied" stage on data created before columns carried a role.
const AppliedColumnTitle = "Applied"

// Resume uploads
const (
	MaxResumeSizeBytes = 10 << 20 // 10 MB
)
