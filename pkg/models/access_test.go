package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessPolicyDefaultsToAuthenticated(t *testing.T) {
	policy := AccessPolicy{Read: AllowAll}
	anon := AccessRequest{}
	user := AccessRequest{User: "editor", Authenticated: true}

	assert.True(t, policy.Allows(OpRead, anon))
	assert.True(t, policy.Allows(OpRead, user))

	for _, op := range []Operation{OpCreate, OpUpdate, OpDelete} {
		assert.False(t, policy.Allows(op, anon), op)
		assert.True(t, policy.Allows(op, user), op)
	}
}

func TestAccessPolicyCustomRule(t *testing.T) {
	policy := AccessPolicy{
		Delete: func(req AccessRequest) bool { return req.User == "admin" },
	}
	assert.False(t, policy.Allows(OpDelete, AccessRequest{User: "editor", Authenticated: true}))
	assert.True(t, policy.Allows(OpDelete, AccessRequest{User: "admin", Authenticated: true}))
}
