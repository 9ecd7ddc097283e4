// Package field flattens native contact field values into plain values.
package field

import (
	"encoding/base64"

	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.FieldNormaliser = (*Normaliser)(nil)

// Postal address keys.
const (
	KeyState      = "state"
	KeyCountry    = "country"
	KeyCity       = "city"
	KeyStreet     = "street"
	KeyPostalCode = "postalCode"
)

// Social profile keys.
const (
	KeyService        = "service"
	KeyUsername       = "username"
	KeyURLString      = "urlString"
	KeyUserIdentifier = "userIdentifier"
)

// Normaliser converts field values into normalised values.
type Normaliser struct{}

// New creates a new field normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise converts one field value. The boolean is false when the value
// has no plain representation; callers omit the field in that case.
func (n *Normaliser) Normalise(v domain.FieldValue) (domain.NormalizedValue, bool) {
	return Normalise(v)
}

// Normalise converts one field value. Precedence follows the case order:
// text, blob, sequence, labeled value.
func Normalise(v domain.FieldValue) (domain.NormalizedValue, bool) {
	switch val := v.(type) {
	case domain.Text:
		return domain.NormalizedText(val), true
	case domain.Blob:
		return domain.NormalizedText(base64.StdEncoding.EncodeToString(val)), true
	case domain.Sequence:
		out := make(domain.NormalizedList, 0, len(val))
		for _, item := range val {
			if nv, ok := Normalise(item); ok {
				out = append(out, nv)
			}
		}
		return out, true
	case domain.Labeled:
		return normaliseLabeled(val.Payload)
	default:
		return nil, false
	}
}

// normaliseLabeled converts the payload of a labeled value. The label is
// not part of the output.
func normaliseLabeled(p domain.LabeledPayload) (domain.NormalizedValue, bool) {
	switch val := p.(type) {
	case domain.Text:
		return domain.NormalizedText(val), true
	case domain.PostalAddress:
		return domain.NormalizedMap{
			KeyState:      val.State,
			KeyCountry:    val.Country,
			KeyCity:       val.City,
			KeyStreet:     val.Street,
			KeyPostalCode: val.PostalCode,
		}, true
	case domain.PhoneNumber:
		return domain.NormalizedText(val.StringValue), true
	case domain.SocialProfile:
		return domain.NormalizedMap{
			KeyService:        val.Service,
			KeyUsername:       val.Username,
			KeyURLString:      val.URLString,
			KeyUserIdentifier: val.UserIdentifier,
		}, true
	case domain.InstantMessageAddress:
		return domain.NormalizedMap{
			KeyUsername: val.Username,
			KeyService:  val.Service,
		}, true
	default:
		// Dates, relations and payload types added later are left out.
		return nil, false
	}
}
