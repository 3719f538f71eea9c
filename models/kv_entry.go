package models

import "time"

// KVEntry is one key of the dashboard key-value store when it is backed by
// PostgreSQL. Value holds the JSON document written by a panel.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(191)"`
	Value     []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (KVEntry) TableName() string { return "kv_entries" }
