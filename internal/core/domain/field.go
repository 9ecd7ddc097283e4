package domain

// FieldKey identifies a field on a contact (e.g., "givenName", "phoneNumbers").
// Keys double as the keys of a normalised Record.
type FieldKey string

// Contact field identifiers.
const (
	FieldFamilyName              FieldKey = "familyName"
	FieldGivenName               FieldKey = "givenName"
	FieldMiddleName              FieldKey = "middleName"
	FieldNickname                FieldKey = "nickname"
	FieldOrganizationName        FieldKey = "organizationName"
	FieldJobTitle                FieldKey = "jobTitle"
	FieldNote                    FieldKey = "note"
	FieldEmailAddresses          FieldKey = "emailAddresses"
	FieldPostalAddresses         FieldKey = "postalAddresses"
	FieldPhoneNumbers            FieldKey = "phoneNumbers"
	FieldImageData               FieldKey = "imageData"
	FieldSocialProfiles          FieldKey = "socialProfiles"
	FieldInstantMessageAddresses FieldKey = "instantMessageAddresses"
	FieldURLAddresses            FieldKey = "urlAddresses"
	FieldBirthday                FieldKey = "birthday"
	FieldDates                   FieldKey = "dates"
	FieldContactRelations        FieldKey = "contactRelations"
)

// defaultFieldKeys is the field set used when a caller does not name one.
var defaultFieldKeys = []FieldKey{
	FieldFamilyName,
	FieldGivenName,
	FieldEmailAddresses,
	FieldPostalAddresses,
	FieldImageData,
	FieldPhoneNumbers,
}

// allFieldKeys lists every field a store may be asked for, in display order.
var allFieldKeys = []FieldKey{
	FieldGivenName,
	FieldMiddleName,
	FieldFamilyName,
	FieldNickname,
	FieldOrganizationName,
	FieldJobTitle,
	FieldNote,
	FieldEmailAddresses,
	FieldPostalAddresses,
	FieldPhoneNumbers,
	FieldImageData,
	FieldSocialProfiles,
	FieldInstantMessageAddresses,
	FieldURLAddresses,
	FieldBirthday,
	FieldDates,
	FieldContactRelations,
}

// DefaultFieldKeys returns a copy of the default field set:
// family name, given name, email addresses, postal addresses, image data
// and phone numbers.
func DefaultFieldKeys() []FieldKey {
	keys := make([]FieldKey, len(defaultFieldKeys))
	copy(keys, defaultFieldKeys)
	return keys
}

// AllFieldKeys returns a copy of every known field key.
func AllFieldKeys() []FieldKey {
	keys := make([]FieldKey, len(allFieldKeys))
	copy(keys, allFieldKeys)
	return keys
}

// IsKnown reports whether k is one of the known field keys.
func (k FieldKey) IsKnown() bool {
	for _, known := range allFieldKeys {
		if k == known {
			return true
		}
	}
	return false
}

// IsDefault reports whether k is part of the default field set.
func (k FieldKey) IsDefault() bool {
	for _, d := range defaultFieldKeys {
		if k == d {
			return true
		}
	}
	return false
}

// IsMultiValued reports whether a store returns the field as a Sequence.
func (k FieldKey) IsMultiValued() bool {
	switch k {
	case FieldEmailAddresses, FieldPostalAddresses, FieldPhoneNumbers,
		FieldSocialProfiles, FieldInstantMessageAddresses, FieldURLAddresses,
		FieldDates, FieldContactRelations:
		return true
	default:
		return false
	}
}

// String returns the key as a plain string.
func (k FieldKey) String() string {
	return string(k)
}

// ParseFieldKeys converts raw identifiers into field keys.
// Unknown identifiers are passed through unchanged: stores simply have
// nothing to return for them.
func ParseFieldKeys(raw []string) []FieldKey {
	keys := make([]FieldKey, 0, len(raw))
	for _, r := range raw {
		if r == "" {
			continue
		}
		keys = append(keys, FieldKey(r))
	}
	return keys
}
