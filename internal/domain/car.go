package domain

import "time"

type Car struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Model         string     `gorm:"size:160;not null" json:"model"`
	Year          string     `gorm:"size:16;not null" json:"year"`
	Photos        StringList `json:"photos"`
	ContainPhotos IntList    `json:"containPhotos"`
	Engine        string     `gorm:"size:255" json:"engine"`
	Power         string     `gorm:"size:64" json:"power"`
	Modifications string     `gorm:"type:text" json:"modifications"`
	Story         string     `gorm:"type:text" json:"story"`
	MemberID      uint       `gorm:"not null;index" json:"memberId"`
	Member        *Member    `gorm:"constraint:OnDelete:CASCADE" json:"member,omitempty"`
	Order         int        `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsActive      bool       `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
