package models

import "time"

// AuditAction enumerates recorded audit events.
type AuditAction string

const (
	AuditActionRegister     AuditAction = "REGISTER"
	AuditActionLogin        AuditAction = "LOGIN"
	AuditActionLogout       AuditAction = "LOGOUT"
	AuditActionUserDelete   AuditAction = "USER_DELETE"
	AuditActionCourseDelete AuditAction = "COURSE_DELETE"
)

// AuditLog stores a best-effort trace of sensitive operations.
type AuditLog struct {
	ID         string      `db:"id" json:"id"`
	UserID     *int64      `db:"user_id" json:"user_id,omitempty"`
	Action     AuditAction `db:"action" json:"action"`
	Resource   string      `db:"resource" json:"resource"`
	ResourceID *int64      `db:"resource_id" json:"resource_id,omitempty"`
	Detail     []byte      `db:"detail" json:"detail,omitempty"`
	IPAddress  string      `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent  string      `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
}
