package store

import (
	"encoding/json"
	"fmt"
)

// Logical keys of the persisted documents. Readers must tolerate a
// missing key (empty collection or nil singleton).
const (
	KeyUsers        = "users"
	KeyMealRecords  = "meal_records"
	KeyCurrentMenu  = "current_menu"
	KeyBackupConfig = "backup_config"
	KeySettings     = "settings"
)

// SchemaVersion is stamped on every persisted document so future
// shape changes can migrate old data instead of guessing.
const SchemaVersion = 1

// Store is the narrow persistence port: whole JSON documents under
// fixed keys. Get returns (nil, nil) when the key is absent.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

type document struct {
	SchemaVersion int             `json:"schemaVersion"`
	Data          json.RawMessage `json:"data"`
}

// migrations maps a document's version to the function that lifts its
// data to version+1. Empty until the first schema change.
var migrations = map[int]func(json.RawMessage) (json.RawMessage, error){}

// Load reads and unmarshals the document under key into out. Returns
// false with out untouched when the key is absent. Documents persisted
// before versioning (raw arrays/objects) are read as version 1.
func Load(s Store, key string, out interface{}) (bool, error) {
	raw, err := s.Get(key)
	if err != nil {
		return false, fmt.Errorf("store get %s: %w", key, err)
	}
	if raw == nil {
		return false, nil
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil || doc.Data == nil {
		// Pre-versioning payload: the value itself is the data.
		doc = document{SchemaVersion: 1, Data: raw}
	}

	data := doc.Data
	for v := doc.SchemaVersion; v < SchemaVersion; v++ {
		migrate, ok := migrations[v]
		if !ok {
			return false, fmt.Errorf("store %s: no migration from schema version %d", key, v)
		}
		if data, err = migrate(data); err != nil {
			return false, fmt.Errorf("store %s: migrate from version %d: %w", key, v, err)
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("store %s: decode: %w", key, err)
	}
	return true, nil
}

// Save marshals value and writes it under key wrapped with the current
// schema version.
func Save(s Store, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store %s: encode: %w", key, err)
	}
	raw, err := json.Marshal(document{SchemaVersion: SchemaVersion, Data: data})
	if err != nil {
		return err
	}
	if err := s.Set(key, raw); err != nil {
		return fmt.Errorf("store set %s: %w", key, err)
	}
	return nil
}
