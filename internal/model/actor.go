package model

// Actor is the authenticated caller of a request, resolved by the auth
// middleware and passed explicitly into services.
type Actor struct {
	UserID  string
	IsAdmin bool
}

// CanAccess reports whether the actor may touch a record owned by ownerID.
func (a Actor) CanAccess(ownerID string) bool {
	return a.IsAdmin || a.UserID == ownerID
}
