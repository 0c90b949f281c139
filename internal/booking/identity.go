package booking

import "github.com/stemwithlyn/booking/internal/common/cnst"

// Capability is one thing a caller may do to the calendar
type Capability uint8

const (
	// CapBook allows creating bookings for oneself
	CapBook Capability = 1 << iota
	// CapSelfService allows the one-time cancel and reschedule of owned appointments
	CapSelfService
	// CapManageCalendar allows admin booking, editing and ledger changes
	CapManageCalendar
)

// Identity is the caller as the engine sees it
type Identity struct {
	UserID   uint
	Username string
	Role     cnst.Role
	caps     Capability
}

// Anonymous is a public visitor booking without an account
func Anonymous() Identity {
	return Identity{caps: CapBook}
}

// NewIdentity derives capabilities from the stored role.
// Admins can never use the client portal.
func NewIdentity(userID uint, username string, role cnst.Role) Identity {
	id := Identity{UserID: userID, Username: username, Role: role}
	switch role {
	case cnst.RoleAdmin:
		id.caps = CapBook | CapManageCalendar
	case cnst.RoleUser, cnst.RoleClient:
		id.caps = CapBook | CapSelfService
	}
	return id
}

func (i Identity) Can(c Capability) bool { return i.caps&c == c }

func (i Identity) IsAdmin() bool { return i.Can(CapManageCalendar) }
