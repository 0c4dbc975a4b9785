package contextkeys

// Keys under which the auth middleware stores the authenticated
// principal in the gin context.
const (
	UserIDKey = "userID"
	RoleKey   = "role"
)
