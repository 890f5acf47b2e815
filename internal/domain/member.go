package domain

import "time"

const DefaultMemberPhoto = "/images/crew/default.jpg"

type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null;index" json:"name"`
	Instagram string    `gorm:"size:120;not null" json:"instagram"`
	Photo     string    `gorm:"size:1024;not null" json:"photo"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Order     int       `gorm:"column:sort_order;not null;default:0;index" json:"order"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"isActive"`
	Cars      []Car     `json:"cars,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
