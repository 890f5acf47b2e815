package domain

import "time"

type AuditAction string

const (
	AuditActionCreate     AuditAction = "CREATE"
	AuditActionUpdate     AuditAction = "UPDATE"
	AuditActionDelete     AuditAction = "DELETE"
	AuditActionSuspend    AuditAction = "SUSPEND"
	AuditActionReactivate AuditAction = "REACTIVATE"
	AuditActionLogin      AuditAction = "LOGIN"
	AuditActionLogout     AuditAction = "LOGOUT"
)

type AuditEntity string

const (
	AuditEntityMember AuditEntity = "MEMBER"
	AuditEntityCar    AuditEntity = "CAR"
	AuditEntityEvent  AuditEntity = "EVENT"
	AuditEntityUser   AuditEntity = "USER"
)

// AuditLog rows are append-only. UserID carries no foreign key so that
// deleting an account leaves its history intact.
type AuditLog struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"not null;index" json:"userId"`
	Action    AuditAction `gorm:"size:16;not null;index" json:"action"`
	Entity    AuditEntity `gorm:"size:16;not null;index" json:"entity"`
	EntityID  *string     `gorm:"size:64" json:"entityId"`
	Details   *string     `gorm:"type:text" json:"details"`
	IPAddress *string     `gorm:"size:64" json:"ipAddress"`
	UserAgent *string     `gorm:"size:512" json:"userAgent"`
	CreatedAt time.Time   `gorm:"index" json:"createdAt"`
}

func (AuditLog) TableName() string { return "audit_logs" }

// AuditLogView is an entry joined with its author for listing.
type AuditLogView struct {
	AuditLog
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}
