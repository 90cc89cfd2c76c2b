package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIdentityRepository(t *testing.T) {
	db := &Connection{}
	repo := NewIdentityRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestNewQueueRepository(t *testing.T) {
	db := &Connection{}
	repo := NewQueueRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestConnection_NilPool(t *testing.T) {
	conn := &Connection{}

	assert.NoError(t, conn.Close())
	assert.Error(t, conn.Ping(t.Context()))
}
