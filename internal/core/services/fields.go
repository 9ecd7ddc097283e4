package services

import (
	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driving"
)

// Ensure FieldCatalog implements the interface.
var _ driving.FieldCatalog = (*FieldCatalog)(nil)

var fieldDescriptions = map[domain.FieldKey]string{
	domain.FieldGivenName:               "Given (first) name",
	domain.FieldMiddleName:              "Middle name",
	domain.FieldFamilyName:              "Family (last) name",
	domain.FieldNickname:                "Nickname",
	domain.FieldOrganizationName:        "Organisation",
	domain.FieldJobTitle:                "Job title",
	domain.FieldNote:                    "Free-form note",
	domain.FieldEmailAddresses:          "Email addresses",
	domain.FieldPostalAddresses:         "Postal addresses (state, country, city, street, postalCode)",
	domain.FieldPhoneNumbers:            "Phone numbers",
	domain.FieldImageData:               "Photo, base64 encoded",
	domain.FieldSocialProfiles:          "Social profiles (service, username, urlString, userIdentifier)",
	domain.FieldInstantMessageAddresses: "Instant-messaging handles (username, service)",
	domain.FieldURLAddresses:            "Web addresses",
	domain.FieldBirthday:                "Birthday (not representable, always omitted)",
	domain.FieldDates:                   "Other dates (not representable, always omitted)",
	domain.FieldContactRelations:        "Related people (not representable, always omitted)",
}

// FieldCatalog lists the fields callers can request.
type FieldCatalog struct{}

// NewFieldCatalog creates a field catalog.
func NewFieldCatalog() *FieldCatalog {
	return &FieldCatalog{}
}

// Fields returns every known field in display order.
func (c *FieldCatalog) Fields() []driving.FieldInfo {
	keys := domain.AllFieldKeys()
	infos := make([]driving.FieldInfo, 0, len(keys))
	for _, k := range keys {
		infos = append(infos, driving.FieldInfo{
			Key:         k,
			Default:     k.IsDefault(),
			Description: fieldDescriptions[k],
		})
	}
	return infos
}
