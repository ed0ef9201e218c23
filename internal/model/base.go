package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type BaseModel struct {
	ID        string    `db:"id" json:"_id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// StringList stores a JSON array of strings in a single jsonb column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}
