package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acadtrack/tracker-api/internal/models"
)

func TestPolicyMatrix(t *testing.T) {
	cases := []struct {
		name string
		op   Operation
		role models.UserRole
		want bool
	}{
		{"teacher marks attendance", OpMarkAttendance, models.RoleTeacher, true},
		{"student cannot mark attendance", OpMarkAttendance, models.RoleStudent, false},
		{"admin cannot mark attendance", OpMarkAttendance, models.RoleAdmin, false},
		{"student reads attendance by student", OpReadAttendanceByStudent, models.RoleStudent, true},
		{"parent reads attendance by student", OpReadAttendanceByStudent, models.RoleParent, true},
		{"admin cannot read attendance by student", OpReadAttendanceByStudent, models.RoleAdmin, false},
		{"student cannot read attendance by course", OpReadAttendanceByCourse, models.RoleStudent, false},
		{"teacher reads attendance by course", OpReadAttendanceByCourse, models.RoleTeacher, true},
		{"teacher reads attendance by date", OpReadAttendanceByDate, models.RoleTeacher, true},
		{"parent cannot read attendance by date", OpReadAttendanceByDate, models.RoleParent, false},
		{"teacher adds marks", OpAddMarks, models.RoleTeacher, true},
		{"parent cannot add marks", OpAddMarks, models.RoleParent, false},
		{"student reads marks by student", OpReadMarksByStudent, models.RoleStudent, true},
		{"student cannot read marks by course", OpReadMarksByCourse, models.RoleStudent, false},
		{"admin creates course", OpCreateCourse, models.RoleAdmin, true},
		{"teacher creates course", OpCreateCourse, models.RoleTeacher, true},
		{"student cannot create course", OpCreateCourse, models.RoleStudent, false},
		{"admin deletes course", OpDeleteCourse, models.RoleAdmin, true},
		{"teacher cannot delete course", OpDeleteCourse, models.RoleTeacher, false},
		{"admin deletes user", OpDeleteUser, models.RoleAdmin, true},
		{"teacher cannot delete user", OpDeleteUser, models.RoleTeacher, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Allowed(tc.op, tc.role))
		})
	}
}

func TestEveryRoleMayReadCourses(t *testing.T) {
	for _, role := range models.AllRoles() {
		assert.True(t, Allowed(OpListCourses, role), "role %s", role)
		assert.True(t, Allowed(OpGetCourse, role), "role %s", role)
	}
}

func TestUnknownOperationDenies(t *testing.T) {
	for _, role := range models.AllRoles() {
		assert.False(t, Allowed(Operation("nonexistent"), role))
	}
}

func TestRolesReturnsCopy(t *testing.T) {
	roles := Roles(OpDeleteCourse)
	assert.Equal(t, []models.UserRole{models.RoleAdmin}, roles)

	roles[0] = models.RoleStudent
	assert.False(t, Allowed(OpDeleteCourse, models.RoleStudent))
}
