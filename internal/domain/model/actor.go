package model

// Actor is the authenticated caller of a request.
type Actor struct {
	User           User
	OrganizationID int64
	Membership     *Membership
	ClientID       int64
}

// HasOrganization reports whether the actor works inside a tenant.
func (a *Actor) HasOrganization() bool {
	return a != nil && a.OrganizationID != 0
}

// ExtraPermissions returns permissions granted by the membership on top of the role.
func (a *Actor) ExtraPermissions() []string {
	if a == nil || a.Membership == nil {
		return nil
	}
	return a.Membership.Permissions
}
