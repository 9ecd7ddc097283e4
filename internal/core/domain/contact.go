package domain

// Contact is one entry of an address book, as read from a contact store.
// It is read-only from this system's point of view.
type Contact struct {
	// ID is the store's opaque identifier for the contact.
	ID string

	// Fields holds the native value of each field the store returned.
	Fields map[FieldKey]FieldValue
}

// NewContact creates a contact with an empty field set.
func NewContact(id string) Contact {
	return Contact{
		ID:     id,
		Fields: make(map[FieldKey]FieldValue),
	}
}

// Value returns the native value of a field.
// The boolean is false when the contact has no value for the key.
func (c Contact) Value(key FieldKey) (FieldValue, bool) {
	if c.Fields == nil {
		return nil, false
	}
	v, ok := c.Fields[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Set stores a field value. Nil values are ignored.
func (c *Contact) Set(key FieldKey, v FieldValue) {
	if v == nil {
		return
	}
	if c.Fields == nil {
		c.Fields = make(map[FieldKey]FieldValue)
	}
	c.Fields[key] = v
}

// Record is a flattened contact: requested field name to normalised value.
// Fields without a representable value are absent, never null.
type Record map[string]NormalizedValue

// FetchResult is the outcome of one contact fetch.
type FetchResult struct {
	// Success is false when access was denied or the query failed.
	Success bool `json:"success"`

	// Records holds one record per contact, in store order.
	// It is empty, never nil, when Success is false.
	Records []Record `json:"records"`
}

// FailedFetch returns the result reported for any failed fetch.
func FailedFetch() FetchResult {
	return FetchResult{Success: false, Records: []Record{}}
}
