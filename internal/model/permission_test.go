package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionsFor(t *testing.T) {
	teacher := &Teacher{UserID: "t1"}
	assert.ElementsMatch(t, []string{"classes:read", "classes:write"}, PermissionsFor(teacher))

	admin := &Teacher{UserID: "a1", Admin: true}
	perms := PermissionsFor(admin)
	assert.Contains(t, perms, "revenue:read")
	assert.Contains(t, perms, "classes:write")
	assert.Len(t, perms, len(TeacherPermissions)+len(AdminPermissions))
}
