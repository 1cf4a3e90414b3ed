package constants

// Session / context keys
const (
	SessionCookieName = "confess_session"
	ContextKeyUserID  = "user_id"

	// ContextKeyProfileUser holds the models.User resolved from the
	// :username path segment by the owner middleware.
	ContextKeyProfileUser = "profile_user"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Uploads
const (
	DefaultMaxUploadBytes = 1 << 20 // 1 MiB
	DefaultUploadDir      = "uploads"
)
