package postgres

import (
	"time"

	"gorm.io/datatypes"
)

// managementUser maps to mgmt_users, the operators of this portal.
// Departments is a JSON array of department ids.
type managementUser struct {
	ID           uint           `gorm:"primaryKey"`
	Username     string         `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string         `gorm:"column:password;size:128;not null"`
	Role         string         `gorm:"size:16;not null;default:user"`
	Departments  datatypes.JSON `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (managementUser) TableName() string { return "mgmt_users" }

// managedGuest maps to mgmt_guests. Email is unique and doubles as the
// RADIUS username in radcheck/radusergroup.
type managedGuest struct {
	ID              uint      `gorm:"primaryKey"`
	Name            string    `gorm:"size:128;not null"`
	Surname         string    `gorm:"size:128;not null"`
	Email           string    `gorm:"uniqueIndex;size:128;not null"`
	ValidFrom       time.Time `gorm:"not null"`
	ValidUntil      time.Time `gorm:"not null"`
	CreatedByUserID uint      `gorm:"index;not null"`
	Blocked         bool      `gorm:"not null;default:false"`
	Department      int       `gorm:"index;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (managedGuest) TableName() string { return "mgmt_guests" }

// radCheck follows the standard FreeRADIUS radcheck schema: generic
// (username, attribute, op, value) tuples, no timestamps.
type radCheck struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"index;size:64;not null;default:''"`
	Attribute string `gorm:"size:64;not null;default:''"`
	Op        string `gorm:"column:op;type:char(2);not null;default:':='"`
	Value     string `gorm:"size:253;not null;default:''"`
}

func (radCheck) TableName() string { return "radcheck" }

// radUserGroup follows the standard FreeRADIUS radusergroup schema with a
// composite (username, groupname) key.
type radUserGroup struct {
	Username  string `gorm:"primaryKey;size:64"`
	Groupname string `gorm:"primaryKey;size:64"`
	Priority  int    `gorm:"not null;default:1"`
}

func (radUserGroup) TableName() string { return "radusergroup" }
