package domain

import "time"

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Location    string    `gorm:"size:255;not null" json:"location"`
	Description string    `gorm:"type:text" json:"description"`
	Photo       *string   `gorm:"size:1024" json:"photo"`
	Order       int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsActive    bool      `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type EventStatus string

const (
	EventStatusPast     EventStatus = "past"
	EventStatusUpcoming EventStatus = "upcoming"
)

// StatusAt compares calendar days in now's location: an event happening
// today is still upcoming.
func (e Event) StatusAt(now time.Time) EventStatus {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	ey, em, ed := e.Date.In(now.Location()).Date()
	day := time.Date(ey, em, ed, 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return EventStatusPast
	}
	return EventStatusUpcoming
}
