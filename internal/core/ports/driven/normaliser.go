package driven

import (
	"github.com/custodia-labs/addrbook/internal/core/domain"
)

// FieldNormaliser flattens native field values into plain values.
type FieldNormaliser interface {
	// Normalise converts one field value. The boolean is false when the
	// value has no plain representation; this is not an error.
	Normalise(v domain.FieldValue) (domain.NormalizedValue, bool)
}
