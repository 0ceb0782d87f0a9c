package domain

import "time"

// Navigation routes shared by the guard, the invalidation handler and the
// login flow.
const (
	RouteLogin     = "/login"
	RouteDashboard = "/dashboard"
)

// Staff roles recognized by the admin dashboard.
const (
	RoleAdmin             = "ADMIN"
	RoleFloor             = "FLOOR"
	RoleCashier           = "CASHIER"
	RoleKitchen           = "KITCHEN"
	RoleComplianceOfficer = "COMPLIANCE_OFFICER"
)

// Session is the authenticated identity held client-side after a successful
// OTP verification. It is replaced wholesale on a new login and deleted on
// logout or invalidation; it is never partially mutated.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// StaffIdentity is the identity payload returned by the verify endpoint.
type StaffIdentity struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// TokenClaims are the claims decoded from an access token. The client only
// ever decodes them for display; validation is the backend's job.
type TokenClaims struct {
	UserID    string
	Role      string
	IssuedAt  int64
	ExpiresAt int64
}

// Expired reports whether the token's exp claim is in the past. Informational
// only: admission decisions never depend on it.
func (c *TokenClaims) Expired() bool {
	return time.Unix(c.ExpiresAt, 0).Before(time.Now())
}

// OTPChallenge is the transient state of a login attempt while the flow is
// between the phone and code steps.
type OTPChallenge struct {
	Phone     string
	Code      string
	ExpiresAt time.Time
	Attempts  int
}
