package auth

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// Identity is the authenticated caller, passed explicitly into every
// service operation. The services trust it completely and never re-validate
// credentials themselves.
type Identity struct {
	UserID int64
	Role   Role
}

func (id Identity) IsAdmin() bool { return id.Role == RoleAdmin }

// CanAccessUser reports whether the caller may read resources owned by userID.
func (id Identity) CanAccessUser(userID int64) bool {
	return id.UserID == userID || id.IsAdmin()
}
