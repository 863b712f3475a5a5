package repository

import "time"

type EntryEntity struct {
	Key       string     `bson:"_id"`
	Value     string     `bson:"value"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty"`
}
