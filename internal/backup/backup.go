package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/store"
)

// ErrFormat is returned when the uploaded file is not JSON at all.
// ErrInvalid is returned when it is JSON but not a backup (required
// top-level arrays missing or of the wrong type). The two produce
// different user-facing messages; the restore outcome is identical —
// existing data is left untouched.
var (
	ErrFormat  = errors.New("バックアップファイルの形式が不正です")
	ErrInvalid = errors.New("無効なバックアップファイルです")
)

// Payload is the backup file shape. The schema version was absent
// from historical exports, so restore tolerates a missing field and
// reads it as version 1.
type Payload struct {
	SchemaVersion int                 `json:"schemaVersion"`
	Timestamp     string              `json:"timestamp"`
	Users         []models.User       `json:"users"`
	MealRecords   []models.MealRecord `json:"mealRecords"`
	CurrentMenu   *models.MenuItem    `json:"currentMenu,omitempty"`
}

// Export snapshots the collections into one pretty-printed JSON
// document and returns it with a dated filename.
func Export(users []models.User, records []models.MealRecord, menu *models.MenuItem, now time.Time) ([]byte, string, error) {
	payload := Payload{
		SchemaVersion: store.SchemaVersion,
		Timestamp:     now.Format(time.RFC3339),
		Users:         users,
		MealRecords:   records,
		CurrentMenu:   menu,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("給食管理バックアップ_%s.json", now.Format("2006-01-02"))
	return data, filename, nil
}

// Parse validates an uploaded backup. It does not touch any stored
// data.
func Parse(data []byte) (*Payload, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, ErrFormat
	}

	for _, key := range []string{"users", "mealRecords"} {
		raw, ok := top[key]
		if !ok || !isJSONArray(raw) {
			return nil, ErrInvalid
		}
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, ErrInvalid
	}
	if payload.SchemaVersion == 0 {
		payload.SchemaVersion = 1
	}
	if payload.SchemaVersion > store.SchemaVersion {
		return nil, ErrInvalid
	}
	return &payload, nil
}

// Restore replaces the persisted collections wholesale with the
// payload's. It deliberately does not mutate in-memory application
// state; the caller reloads after a successful restore. Nothing is
// written unless the payload already parsed, so a failed Parse leaves
// the store byte-identical.
func Restore(s store.Store, payload *Payload) error {
	if err := store.Save(s, store.KeyUsers, payload.Users); err != nil {
		return err
	}
	if err := store.Save(s, store.KeyMealRecords, payload.MealRecords); err != nil {
		return err
	}
	return store.Save(s, store.KeyCurrentMenu, payload.CurrentMenu)
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
