package tenant

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidTenantID  = errors.New("invalid tenant id format")
	ErrReservedTenantID = errors.New("tenant id is reserved for the platform")
)

// Tenant ids must survive as a subdomain label, a path segment, and a query
// value unchanged.
var tenantIDRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}$`)

// ID is the opaque tenant identifier. It doubles as the cache key and as the
// subdomain/path/query token a storefront URL carries.
type ID string

func (id ID) String() string { return string(id) }

// ValidateID rejects ids that would not resolve back to the same tenant:
// malformed labels and ids shadowed by reserved platform segments.
func ValidateID(id ID) error {
	s := string(id)
	if !tenantIDRegex.MatchString(s) {
		return ErrInvalidTenantID
	}
	if _, reserved := reservedSegments[s]; reserved {
		return ErrReservedTenantID
	}
	return nil
}

// OwnerEmails accepts both the scalar and the list form on the wire. Early
// tenant records stored a single owner email as a bare string; later ones
// store a list. Both normalize to a slice here.
type OwnerEmails []string

func (o *OwnerEmails) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*o = nil
			return nil
		}
		*o = OwnerEmails{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*o = OwnerEmails(many)
	return nil
}

// Contains reports whether email matches any owner, case-insensitively.
func (o OwnerEmails) Contains(email string) bool {
	needle := strings.ToLower(strings.TrimSpace(email))
	if needle == "" {
		return false
	}
	for _, owner := range o {
		if strings.ToLower(strings.TrimSpace(owner)) == needle {
			return true
		}
	}
	return false
}

// Tenant is the record for one storefront. Replaced wholesale on refresh;
// partial mutation happens only through explicit update operations that also
// invalidate the cache.
type Tenant struct {
	ID          ID          `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	OwnerEmails OwnerEmails `json:"owner_emails"`
	ImageURL    string      `json:"image_url,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Identity is what the data layer reads from the identity provider.
type Identity struct {
	Email string `json:"email"`
}
