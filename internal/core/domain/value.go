package domain

// FieldValue is the native value of one contact field as a store returns it.
// It is a closed set of variants: Text, Blob, Sequence and Labeled.
type FieldValue interface {
	isFieldValue()
}

// LabeledPayload is the typed value carried inside a Labeled field value.
// Variants: Text, PostalAddress, PhoneNumber, SocialProfile,
// InstantMessageAddress, DateComponents and ContactRelation.
type LabeledPayload interface {
	isLabeledPayload()
}

// Text is a plain string value. It is valid both as a field value and as a
// labeled payload.
type Text string

// Blob is binary data such as a contact photo.
type Blob []byte

// Sequence is an ordered multi-valued field.
type Sequence []FieldValue

// Labeled pairs a label (e.g. "home", "work") with a typed payload.
// Only the payload is consumed when flattening.
type Labeled struct {
	Label   string
	Payload LabeledPayload
}

// PostalAddress is a structured postal address.
type PostalAddress struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// PhoneNumber is a phone number as entered in the address book.
type PhoneNumber struct {
	// StringValue is the display form of the number.
	StringValue string
}

// SocialProfile is an account on a social service.
type SocialProfile struct {
	Service        string
	Username       string
	URLString      string
	UserIdentifier string
}

// InstantMessageAddress is a handle on an instant-messaging service.
type InstantMessageAddress struct {
	Username string
	Service  string
}

// DateComponents is a calendar date such as a birthday or anniversary.
// Year is zero when unknown.
type DateComponents struct {
	Year  int
	Month int
	Day   int
}

// ContactRelation names a related person ("mother", "assistant", ...).
type ContactRelation struct {
	Name string
}

func (Text) isFieldValue()     {}
func (Blob) isFieldValue()     {}
func (Sequence) isFieldValue() {}
func (Labeled) isFieldValue()  {}

func (Text) isLabeledPayload()                  {}
func (PostalAddress) isLabeledPayload()         {}
func (PhoneNumber) isLabeledPayload()           {}
func (SocialProfile) isLabeledPayload()         {}
func (InstantMessageAddress) isLabeledPayload() {}
func (DateComponents) isLabeledPayload()        {}
func (ContactRelation) isLabeledPayload()       {}

// Label wraps payload in a Labeled value.
func Label(label string, payload LabeledPayload) Labeled {
	return Labeled{Label: label, Payload: payload}
}
