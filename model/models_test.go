package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
	assert.False(t, Role("").Valid())
}

func TestUserPasswordNeverSerialized(t *testing.T) {
	data, err := json.Marshal(User{ID: 1, Name: "A", Email: "a@b.com", Password: "hash", Role: RoleUser})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hash")
	assert.NotContains(t, string(data), "password")
}

func TestOpenLoanSerializesNullReturnDate(t *testing.T) {
	data, err := json.Marshal(BorrowedBook{ID: 1, BookID: 2, ReaderID: 3, BorrowDate: time.Now()})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"return_date":null`)
}
