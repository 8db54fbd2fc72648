package domain

// Subject is the authenticated caller as seen by authorization checks.
type Subject struct {
	ID   string
	Role Role
}

// SubjectOf extracts the authorization view of a user.
func SubjectOf(u *User) Subject {
	if u == nil {
		return Subject{}
	}
	return Subject{ID: u.ID, Role: u.Role}
}

// Resource describes who controls a record: its owner and an optional
// delegate (for example the agent assigned to a listing).
type Resource struct {
	OwnerID    string
	DelegateID string
}

// CanAct reports whether subject may mutate resource: it must be the owner,
// the delegate, or an admin.
func CanAct(s Subject, r Resource) bool {
	if s.ID == "" {
		return false
	}
	if s.Role == RoleAdmin {
		return true
	}
	if r.OwnerID != "" && s.ID == r.OwnerID {
		return true
	}
	return r.DelegateID != "" && s.ID == r.DelegateID
}

// Authorize is CanAct returning ErrNotOwner on refusal.
func Authorize(s Subject, r Resource) error {
	if !CanAct(s, r) {
		return ErrNotOwner
	}
	return nil
}

// HasRole reports whether s holds one of allowed.
func HasRole(s Subject, allowed ...Role) bool {
	for _, r := range allowed {
		if s.Role == r {
			return true
		}
	}
	return false
}
