package host

import (
	"errors"
	"fmt"

	"github.com/go-park/pausable/pkg/pausable"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// KVEntry is one storage entry of a GormStore.
type KVEntry struct {
	Key   []byte `gorm:"column:entry_key;primaryKey"`
	Value []byte `gorm:"column:entry_value;not null"`
}

func (KVEntry) TableName() string { return "kv_entries" }

// GormStore persists component storage in a relational database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("host: migrate kv_entries: %w", err)
	}
	return &GormStore{db: db}, nil
}

// OpenSQLite opens a sqlite backed store; dsn is a file path or "file::memory:".
func OpenSQLite(dsn string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("host: open sqlite %q: %w", dsn, err)
	}
	return NewGormStore(db)
}

func (g *GormStore) StorageRead(key []byte) ([]byte, bool, error) {
	var e KVEntry
	err := g.db.Where("entry_key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return e.Value, true, nil
}

func (g *GormStore) StorageWrite(key, value []byte) error {
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"entry_value"}),
	}).Create(&KVEntry{Key: key, Value: value}).Error
}

func (g *GormStore) StorageRemove(key []byte) error {
	return g.db.Where("entry_key = ?", key).Delete(&KVEntry{}).Error
}

func (g *GormStore) Atomic(fn func(s pausable.Storage) error) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
