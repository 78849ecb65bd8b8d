package profile

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("profile not found")
)

type Role string

const (
	RoleSales   Role = "SALES"
	RoleAdmin   Role = "ADMIN"
	RoleFinance Role = "FINANCE"
	RoleMaster  Role = "MASTER"
)

// roleAliases maps every stored role spelling onto the canonical set.
var roleAliases = map[string]Role{
	"LEVEL1":  RoleSales,
	"LEVEL_1": RoleSales,
	"LEVEL2":  RoleSales,
	"LEVEL_2": RoleSales,
	"SALES":   RoleSales,
	"LEVEL3":  RoleAdmin,
	"LEVEL_3": RoleAdmin,
	"ADMIN":   RoleAdmin,
	"FINANCE": RoleFinance,
	"MASTER":  RoleMaster,
}

// NormalizeRole maps a stored role onto the canonical set. Unrecognized
// values become SALES, the least-privileged role; ok reports whether raw was known.
func NormalizeRole(raw string) (role Role, ok bool) {
	r, ok := roleAliases[strings.ToUpper(strings.TrimSpace(raw))]
	if !ok {
		return RoleSales, false
	}
	return r, true
}

// OneOf reports whether r is in roles.
func (r Role) OneOf(roles ...Role) bool {
	for _, x := range roles {
		if r == x {
			return true
		}
	}
	return false
}

// Table: profiles
type Profile struct {
	ID        string    `gorm:"column:id;primaryKey;size:64" json:"id"`
	Email     string    `gorm:"column:email;size:255;index" json:"email"`
	FullName  string    `gorm:"column:full_name;size:255" json:"full_name"`
	Role      string    `gorm:"column:role;size:32;index" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// RequestContext is the authenticated actor of one HTTP call. Role is always
// normalized; authorization checks must never look at the raw profile role.
type RequestContext struct {
	UserID   string `json:"userId"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// DisplayName prefers the full name and falls back to the email.
func (rc RequestContext) DisplayName() string {
	if rc.FullName != "" {
		return rc.FullName
	}
	return rc.Email
}
