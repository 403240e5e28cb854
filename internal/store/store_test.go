package store

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// exerciseStore runs the Store contract against one backend.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	val, err := s.Get("missing")
	assert.NoError(t, err)
	assert.Nil(t, val)

	assert.NoError(t, s.Set(KeyUsers, []byte(`{"a":1}`)))
	val, err = s.Get(KeyUsers)
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), val)

	// overwrite, not append
	assert.NoError(t, s.Set(KeyUsers, []byte(`{"a":2}`)))
	val, err = s.Get(KeyUsers)
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"a":2}`), val)

	assert.NoError(t, s.Delete(KeyUsers))
	val, err = s.Get(KeyUsers)
	assert.NoError(t, err)
	assert.Nil(t, val)

	// deleting an absent key is not an error
	assert.NoError(t, s.Delete("missing"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestGormStore(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	s, err := NewGormStore(db)
	assert.NoError(t, err)
	exerciseStore(t, s)
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	exerciseStore(t, NewRedisStore(client))
}

func TestSaveAndLoad(t *testing.T) {
	s := NewMemoryStore()

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var out doc
	found, err := Load(s, KeySettings, &out)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, doc{}, out)

	assert.NoError(t, Save(s, KeySettings, doc{Name: "x", Count: 3}))
	found, err = Load(s, KeySettings, &out)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, doc{Name: "x", Count: 3}, out)

	// the persisted value carries the schema envelope
	raw, err := s.Get(KeySettings)
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"schemaVersion":1`)
}

func TestLoadPreVersioningPayload(t *testing.T) {
	s := NewMemoryStore()
	// historical exports stored the value bare, without the envelope
	assert.NoError(t, s.Set(KeyUsers, []byte(`[{"id":"u-1"}]`)))

	var out []map[string]string
	found, err := Load(s, KeyUsers, &out)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "u-1", out[0]["id"])
}

func TestLoadUnknownVersionFails(t *testing.T) {
	s := NewMemoryStore()
	assert.NoError(t, s.Set(KeyUsers, []byte(`{"schemaVersion":0,"data":[]}`)))

	var out []string
	_, err := Load(s, KeyUsers, &out)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no migration")
}
