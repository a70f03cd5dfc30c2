package constants

// Session / context keys
const (
	SessionCookieName = "flowboard_session"
	ContextKeyUserID  = "user_id"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
