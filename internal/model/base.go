package model

import "github.com/google/uuid"

// ensureID assigns a fresh UUID when the primary key has not been set yet.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
