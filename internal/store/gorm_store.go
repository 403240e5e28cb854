package store

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one persisted document row.
type Entry struct {
	Key       string         `gorm:"primarykey"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt int64          `gorm:"autoUpdateTime"`
}

func (Entry) TableName() string {
	return "store_entries"
}

// GormStore keeps documents in a single key/value table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(key string) ([]byte, error) {
	var entry Entry
	err := s.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(entry.Value), nil
}

func (s *GormStore) Set(key string, value []byte) error {
	entry := Entry{Key: key, Value: datatypes.JSON(value)}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *GormStore) Delete(key string) error {
	return s.db.Delete(&Entry{}, "key = ?", key).Error
}
