package common

import (
	"github.com/google/uuid"
)

// NewImportID generates a unique import result ID with the "imp_" prefix
// Format: imp_<uuid>
func NewImportID() string {
	return "imp_" + uuid.New().String()
}
