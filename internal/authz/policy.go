// Package authz holds the static operation → roles authorization table.
// The table is the single source of truth for access decisions and is
// evaluated before any data access, independent of the transport layer.
package authz

import "github.com/acadtrack/tracker-api/internal/models"

// Operation names a guarded API operation.
type Operation string

const (
	OpMarkAttendance          Operation = "attendance:mark"
	OpReadAttendanceByStudent Operation = "attendance:read_by_student"
	OpReadAttendanceByCourse  Operation = "attendance:read_by_course"
	OpReadAttendanceByDate    Operation = "attendance:read_by_date"
	OpExportAttendance        Operation = "attendance:export"

	OpAddMarks           Operation = "marks:add"
	OpReadMarksByStudent Operation = "marks:read_by_student"
	OpReadMarksByCourse  Operation = "marks:read_by_course"
	OpExportMarks        Operation = "marks:export"

	OpListCourses  Operation = "courses:list"
	OpGetCourse    Operation = "courses:get"
	OpCreateCourse Operation = "courses:create"
	OpDeleteCourse Operation = "courses:delete"

	OpListUsers  Operation = "users:list"
	OpGetUser    Operation = "users:get"
	OpDeleteUser Operation = "users:delete"
)

// policy maps each operation to its allow set. The table deliberately does
// not scope STUDENT or PARENT callers to their own records; the read
// endpoints accept any student id for those roles.
var policy = map[Operation][]models.UserRole{
	OpMarkAttendance:          {models.RoleTeacher},
	OpReadAttendanceByStudent: {models.RoleStudent, models.RoleTeacher, models.RoleParent},
	OpReadAttendanceByCourse:  {models.RoleTeacher},
	OpReadAttendanceByDate:    {models.RoleTeacher},
	OpExportAttendance:        {models.RoleTeacher},

	OpAddMarks:           {models.RoleTeacher},
	OpReadMarksByStudent: {models.RoleStudent, models.RoleTeacher, models.RoleParent},
	OpReadMarksByCourse:  {models.RoleTeacher},
	OpExportMarks:        {models.RoleTeacher},

	OpListCourses:  models.AllRoles(),
	OpGetCourse:    models.AllRoles(),
	OpCreateCourse: {models.RoleAdmin, models.RoleTeacher},
	OpDeleteCourse: {models.RoleAdmin},

	OpListUsers:  {models.RoleAdmin},
	OpGetUser:    {models.RoleAdmin},
	OpDeleteUser: {models.RoleAdmin},
}

// Allowed reports whether the role may invoke the operation. Unknown
// operations deny every role.
func Allowed(op Operation, role models.UserRole) bool {
	for _, r := range policy[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Roles returns a copy of the allow set for inspection.
func Roles(op Operation) []models.UserRole {
	allowed := policy[op]
	out := make([]models.UserRole, len(allowed))
	copy(out, allowed)
	return out
}
