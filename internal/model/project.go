package model

import (
	"encoding/json"
	"time"
)

// ProjectRecord is a saved design in the external document store. Design is
// kept opaque: the store round-trips whatever the dashboard saved.
type ProjectRecord struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	OwnerID   string          `json:"owner_id"`
	Design    json.RawMessage `json:"design"`
	CreatedAt time.Time       `json:"created_at"`
}
