package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

// Row kinds stored in contact_fields.kind.
const (
	kindText            = "text"
	kindBlob            = "blob"
	kindLabeledText     = "labeled_text"
	kindLabeledPostal   = "labeled_postal"
	kindLabeledPhone    = "labeled_phone"
	kindLabeledSocial   = "labeled_social"
	kindLabeledIM       = "labeled_im"
	kindLabeledDate     = "labeled_date"
	kindLabeledRelation = "labeled_relation"
)

// fieldRow is one row of contact_fields.
type fieldRow struct {
	key     domain.FieldKey
	seq     int
	kind    string
	label   sql.NullString
	text    sql.NullString
	blob    []byte
	payload sql.NullString
}

type postalJSON struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type socialJSON struct {
	Service        string `json:"service"`
	Username       string `json:"username"`
	URLString      string `json:"urlString"`
	UserIdentifier string `json:"userIdentifier"`
}

type imJSON struct {
	Username string `json:"username"`
	Service  string `json:"service"`
}

type dateJSON struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

type relationJSON struct {
	Name string `json:"name"`
}

// decodeRow rebuilds the native value of a single row.
func decodeRow(r fieldRow) (domain.FieldValue, error) {
	switch r.kind {
	case kindText:
		return domain.Text(r.text.String), nil
	case kindBlob:
		if r.blob == nil {
			return domain.Blob{}, nil
		}
		return domain.Blob(r.blob), nil
	case kindLabeledText:
		return domain.Label(r.label.String, domain.Text(r.text.String)), nil
	case kindLabeledPhone:
		return domain.Label(r.label.String, domain.PhoneNumber{StringValue: r.text.String}), nil
	case kindLabeledPostal:
		var p postalJSON
		if err := unmarshalPayload(r, &p); err != nil {
			return nil, err
		}
		return domain.Label(r.label.String, domain.PostalAddress(p)), nil
	case kindLabeledSocial:
		var p socialJSON
		if err := unmarshalPayload(r, &p); err != nil {
			return nil, err
		}
		return domain.Label(r.label.String, domain.SocialProfile(p)), nil
	case kindLabeledIM:
		var p imJSON
		if err := unmarshalPayload(r, &p); err != nil {
			return nil, err
		}
		return domain.Label(r.label.String, domain.InstantMessageAddress(p)), nil
	case kindLabeledDate:
		var p dateJSON
		if err := unmarshalPayload(r, &p); err != nil {
			return nil, err
		}
		return domain.Label(r.label.String, domain.DateComponents(p)), nil
	case kindLabeledRelation:
		var p relationJSON
		if err := unmarshalPayload(r, &p); err != nil {
			return nil, err
		}
		return domain.Label(r.label.String, domain.ContactRelation(p)), nil
	default:
		return nil, fmt.Errorf("%w: unknown field kind %q", domain.ErrInvalidInput, r.kind)
	}
}

func unmarshalPayload(r fieldRow, v any) error {
	if !r.payload.Valid || r.payload.String == "" {
		return fmt.Errorf("%w: %s row %s/%d has no payload", domain.ErrInvalidInput, r.kind, r.key, r.seq)
	}
	if err := json.Unmarshal([]byte(r.payload.String), v); err != nil {
		return fmt.Errorf("%w: %s payload: %w", domain.ErrInvalidInput, r.kind, err)
	}
	return nil
}

// encodeValue flattens a native field value into rows. Sequences become one
// row per element; a nested sequence is not representable and is skipped.
func encodeValue(key domain.FieldKey, v domain.FieldValue) ([]fieldRow, error) {
	if seq, ok := v.(domain.Sequence); ok {
		rows := make([]fieldRow, 0, len(seq))
		for _, item := range seq {
			if _, nested := item.(domain.Sequence); nested || item == nil {
				continue
			}
			r, err := encodeSingle(key, item)
			if err != nil {
				return nil, err
			}
			r.seq = len(rows)
			rows = append(rows, r)
		}
		return rows, nil
	}

	r, err := encodeSingle(key, v)
	if err != nil {
		return nil, err
	}
	return []fieldRow{r}, nil
}

func encodeSingle(key domain.FieldKey, v domain.FieldValue) (fieldRow, error) {
	r := fieldRow{key: key}

	switch val := v.(type) {
	case domain.Text:
		r.kind = kindText
		r.text = nullString(string(val))
		return r, nil
	case domain.Blob:
		r.kind = kindBlob
		r.blob = []byte(val)
		return r, nil
	case domain.Labeled:
		r.label = nullString(val.Label)
		return encodePayload(r, val.Payload)
	default:
		return r, fmt.Errorf("%w: cannot store %T", domain.ErrInvalidInput, v)
	}
}

func encodePayload(r fieldRow, payload domain.LabeledPayload) (fieldRow, error) {
	var body any

	switch p := payload.(type) {
	case domain.Text:
		r.kind = kindLabeledText
		r.text = nullString(string(p))
		return r, nil
	case domain.PhoneNumber:
		r.kind = kindLabeledPhone
		r.text = nullString(p.StringValue)
		return r, nil
	case domain.PostalAddress:
		r.kind, body = kindLabeledPostal, postalJSON(p)
	case domain.SocialProfile:
		r.kind, body = kindLabeledSocial, socialJSON(p)
	case domain.InstantMessageAddress:
		r.kind, body = kindLabeledIM, imJSON(p)
	case domain.DateComponents:
		r.kind, body = kindLabeledDate, dateJSON(p)
	case domain.ContactRelation:
		r.kind, body = kindLabeledRelation, relationJSON(p)
	default:
		return r, fmt.Errorf("%w: cannot store labeled %T", domain.ErrInvalidInput, payload)
	}

	data, err := json.Marshal(body)
	if err != nil {
		return r, err
	}
	r.payload = nullString(string(data))
	return r, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
