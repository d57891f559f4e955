package pgstore

import (
	"time"

	"github.com/uptrace/bun"
)

// EntryDao maps a key/value pair to the 'tonconnect_kv' table in PostgreSQL.
type EntryDao struct {
	bun.BaseModel `bun:"table:tonconnect_kv,alias:kv"`
	Key           string    `bun:"key,pk,type:varchar(255)"`
	Value         string    `bun:"value,notnull,type:text"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
