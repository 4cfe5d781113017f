package models

import "time"

// Role is the access level of a user account.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleRepresentative Role = "representative"
	RoleCustomer       Role = "customer"
	RoleViewer         Role = "viewer"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleRepresentative, RoleCustomer, RoleViewer:
		return true
	}
	return false
}

// User is an application account. Accounts with RoleCustomer are linked to
// the customer record they may read invoices for.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:200;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:200;not null" json:"-"`
	Role         Role      `gorm:"size:20;not null;default:'customer'" json:"role"`
	CustomerID   *uint     `gorm:"index" json:"customer_id,omitempty"`
	Customer     *Customer `gorm:"foreignKey:CustomerID" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OwnsCustomer reports whether this account is linked to the given customer
// record. Only meaningful for RoleCustomer accounts.
func (u *User) OwnsCustomer(customerID uint) bool {
	return u.CustomerID != nil && *u.CustomerID == customerID
}
