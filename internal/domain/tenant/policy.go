package tenant

import "strings"

// AdminPolicy decides whether an identity may manage a tenant's catalog.
// This is a presentation-layer gate only; the backend remains the authority
// on every mutation.
type AdminPolicy struct {
	platformAdmins map[string]struct{}
}

func NewAdminPolicy(platformAdmins []string) *AdminPolicy {
	admins := make(map[string]struct{}, len(platformAdmins))
	for _, email := range platformAdmins {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			admins[email] = struct{}{}
		}
	}
	return &AdminPolicy{platformAdmins: admins}
}

// IsAdmin is true when the identity is a platform-wide admin or appears in
// the tenant's owner set. Emails compare case-insensitively. An absent
// identity or a not-yet-loaded tenant record is never an admin.
func (p *AdminPolicy) IsAdmin(identity *Identity, t *Tenant) bool {
	if identity == nil || identity.Email == "" {
		return false
	}

	email := strings.ToLower(strings.TrimSpace(identity.Email))
	if _, ok := p.platformAdmins[email]; ok {
		return true
	}

	if t == nil {
		return false
	}
	return t.OwnerEmails.Contains(email)
}
