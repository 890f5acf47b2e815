package domain

import "time"

type User struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Name             string     `gorm:"size:255;not null" json:"name"`
	Email            string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash     *string    `gorm:"size:255" json:"-"`
	RoleID           uint       `gorm:"not null;index" json:"roleId"`
	Role             Role       `gorm:"constraint:OnDelete:RESTRICT" json:"role"`
	MemberID         *uint      `gorm:"index" json:"memberId"`
	Member           *Member    `gorm:"constraint:OnDelete:SET NULL" json:"member,omitempty"`
	IsActive         bool       `gorm:"not null;default:true" json:"isActive"`
	LastLogin        *time.Time `json:"lastLogin"`
	EmailVerifiedAt  *time.Time `json:"emailVerifiedAt"`
	SetupToken       *string    `gorm:"uniqueIndex;size:128" json:"-"`
	SetupTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// IsPending reports whether the account still waits for its first credential.
func (u User) IsPending() bool {
	return u.PasswordHash == nil || *u.PasswordHash == ""
}

type UserSummary struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	RoleID        uint       `json:"roleId"`
	RoleName      string     `json:"roleName"`
	MemberID      *uint      `json:"memberId"`
	MemberName    string     `json:"memberName,omitempty"`
	IsActive      bool       `json:"isActive"`
	IsPasswordSet bool       `json:"isPasswordSet"`
	LastLogin     *time.Time `json:"lastLogin"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func (u User) Summary() UserSummary {
	s := UserSummary{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		RoleID:        u.RoleID,
		RoleName:      u.Role.Name,
		MemberID:      u.MemberID,
		IsActive:      u.IsActive,
		IsPasswordSet: !u.IsPending(),
		LastLogin:     u.LastLogin,
		CreatedAt:     u.CreatedAt,
	}
	if u.Member != nil {
		s.MemberName = u.Member.Name
	}
	return s
}
