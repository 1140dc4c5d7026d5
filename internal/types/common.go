package types

// HTTP Header Constants
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// Context keys for request-scoped values
const (
	// UserCtxName is the fiber Locals key the session middleware stores the
	// authenticated UserContext under.
	UserCtxName = "user"
)

// SessionCookieName is the cookie that carries the signed session id.
// The name is inherited from the original web client and must not change
// without coordinating with it.
const SessionCookieName = "qid"

// UserContext carries the identity of the authenticated caller through a
// request. It is resolved once by the session middleware and read by
// handlers and services.
type UserContext struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}
