package globals

// Validation limits enforced at the API boundary.
const (
	MinUsernameLen = 3
	MaxUsernameLen = 80
	MinPasswordLen = 6
)

// Pagination defaults for the post listing.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// SessionName is the cookie name used by the session middleware.
const SessionName = "blog_session"

// Session keys recognized by the authentication resolver.
const (
	SessionUserIDKey   = "user_id"
	SessionUsernameKey = "username"
)
