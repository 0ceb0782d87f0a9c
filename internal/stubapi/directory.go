package stubapi

import (
	"context"
	"sync"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

// StaffDirectory is the stub's in-memory roster of staff accounts keyed by
// phone number. The production backend does this lookup against its own
// store; here a fixture set is enough to exercise every login path,
// including the not-a-staff-account rejection.
type StaffDirectory struct {
	mu    sync.RWMutex
	staff map[string]domain.StaffIdentity
}

func NewStaffDirectory() *StaffDirectory {
	return &StaffDirectory{
		staff: map[string]domain.StaffIdentity{
			"9876543210": {ID: "stf_1001", Role: domain.RoleAdmin},
			"9876543211": {ID: "stf_1002", Role: domain.RoleFloor},
			"9876543212": {ID: "stf_1003", Role: domain.RoleCashier},
			"9876543213": {ID: "stf_1004", Role: domain.RoleKitchen},
			"9876543214": {ID: "stf_1005", Role: domain.RoleComplianceOfficer},
		},
	}
}

func (d *StaffDirectory) FindByPhone(_ context.Context, phone string) (*domain.StaffIdentity, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	identity, ok := d.staff[phone]
	if !ok {
		return nil, domain.ErrStaffNotFound
	}
	copied := identity
	return &copied, nil
}

// Add registers a staff account; used by tests.
func (d *StaffDirectory) Add(phone string, identity domain.StaffIdentity) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.staff[phone] = identity
}

var _ domain.StaffDirectory = (*StaffDirectory)(nil)
