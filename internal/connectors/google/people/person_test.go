package people

import (
	"testing"

	"github.com/stretchr/testify/assert"
	peopleapi "google.golang.org/api/people/v1"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

func TestPersonFieldMask(t *testing.T) {
	tests := []struct {
		name string
		keys []domain.FieldKey
		want string
	}{
		{"defaults", domain.DefaultFieldKeys(), "addresses,emailAddresses,names,phoneNumbers,photos"},
		{"shared field listed once", []domain.FieldKey{domain.FieldGivenName, domain.FieldFamilyName}, "names"},
		{"unmapped only", []domain.FieldKey{domain.FieldSocialProfiles}, "metadata"},
		{"empty", nil, "metadata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, personFieldMask(tt.keys))
		})
	}
}

func TestPersonToContact(t *testing.T) {
	person := &peopleapi.Person{
		ResourceName: "people/c1",
		Names: []*peopleapi.Name{
			{GivenName: "Augusta", FamilyName: "King"},
			{GivenName: "Ada", FamilyName: "Lovelace", MiddleName: "Byron", Metadata: &peopleapi.FieldMetadata{Primary: true}},
		},
		Nicknames:     []*peopleapi.Nickname{{Value: "Enchantress of Numbers"}},
		Organizations: []*peopleapi.Organization{{Name: "Analytical Engine", Title: "Programmer"}},
		Biographies:   []*peopleapi.Biography{{Value: "First programmer"}},
		EmailAddresses: []*peopleapi.EmailAddress{
			{Value: "ada@example.com", Type: "home"},
			nil,
		},
		Addresses: []*peopleapi.Address{
			{StreetAddress: "12 St James's Sq", City: "London", Region: "Greater London", PostalCode: "SW1Y", Country: "UK", Type: "home"},
		},
		PhoneNumbers: []*peopleapi.PhoneNumber{{Value: "+44 20 7946 0000", Type: "mobile"}},
		ImClients:    []*peopleapi.ImClient{{Username: "ada", Protocol: "jabber", FormattedProtocol: "Jabber", Type: "work"}},
		Urls:         []*peopleapi.Url{{Value: "https://example.com/ada", Type: "homePage"}},
		Birthdays:    []*peopleapi.Birthday{{Text: "no date"}, {Date: &peopleapi.Date{Year: 1815, Month: 12, Day: 10}}},
		Events:       []*peopleapi.Event{{Date: &peopleapi.Date{Year: 1835, Month: 7, Day: 8}, Type: "anniversary"}},
		Relations:    []*peopleapi.Relation{{Person: "Lord Byron", Type: "father"}},
	}

	c := PersonToContact(person, domain.AllFieldKeys(), []byte{1, 2, 3})

	assert.Equal(t, "people/c1", c.ID)
	want := map[domain.FieldKey]domain.FieldValue{
		domain.FieldGivenName:        domain.Text("Ada"),
		domain.FieldFamilyName:       domain.Text("Lovelace"),
		domain.FieldMiddleName:       domain.Text("Byron"),
		domain.FieldNickname:         domain.Text("Enchantress of Numbers"),
		domain.FieldOrganizationName: domain.Text("Analytical Engine"),
		domain.FieldJobTitle:         domain.Text("Programmer"),
		domain.FieldNote:             domain.Text("First programmer"),
		domain.FieldEmailAddresses:   domain.Sequence{domain.Label("home", domain.Text("ada@example.com"))},
		domain.FieldPostalAddresses: domain.Sequence{domain.Label("home", domain.PostalAddress{
			Street: "12 St James's Sq", City: "London", State: "Greater London", PostalCode: "SW1Y", Country: "UK",
		})},
		domain.FieldPhoneNumbers: domain.Sequence{domain.Label("mobile", domain.PhoneNumber{StringValue: "+44 20 7946 0000"})},
		domain.FieldInstantMessageAddresses: domain.Sequence{domain.Label("work", domain.InstantMessageAddress{
			Username: "ada", Service: "Jabber",
		})},
		domain.FieldURLAddresses:     domain.Sequence{domain.Label("homePage", domain.Text("https://example.com/ada"))},
		domain.FieldSocialProfiles:   domain.Sequence{},
		domain.FieldImageData:        domain.Blob{1, 2, 3},
		domain.FieldBirthday:         domain.Label("birthday", domain.DateComponents{Year: 1815, Month: 12, Day: 10}),
		domain.FieldDates:            domain.Sequence{domain.Label("anniversary", domain.DateComponents{Year: 1835, Month: 7, Day: 8})},
		domain.FieldContactRelations: domain.Sequence{domain.Label("father", domain.ContactRelation{Name: "Lord Byron"})},
	}
	assert.Equal(t, want, c.Fields)
}

func TestPersonToContact_EmptyPerson(t *testing.T) {
	c := PersonToContact(&peopleapi.Person{ResourceName: "people/c2"}, domain.DefaultFieldKeys(), nil)

	assert.Equal(t, map[domain.FieldKey]domain.FieldValue{
		domain.FieldFamilyName:      domain.Text(""),
		domain.FieldGivenName:       domain.Text(""),
		domain.FieldEmailAddresses:  domain.Sequence{},
		domain.FieldPostalAddresses: domain.Sequence{},
		domain.FieldPhoneNumbers:    domain.Sequence{},
	}, c.Fields)
}

func TestPersonToContact_OnlyRequestedKeys(t *testing.T) {
	person := &peopleapi.Person{
		Names:          []*peopleapi.Name{{GivenName: "Ada", FamilyName: "Lovelace"}},
		EmailAddresses: []*peopleapi.EmailAddress{{Value: "ada@example.com"}},
	}

	c := PersonToContact(person, []domain.FieldKey{domain.FieldFamilyName}, nil)

	assert.Equal(t, map[domain.FieldKey]domain.FieldValue{
		domain.FieldFamilyName: domain.Text("Lovelace"),
	}, c.Fields)
}

func TestPhotoURL(t *testing.T) {
	tests := []struct {
		name   string
		photos []*peopleapi.Photo
		want   string
	}{
		{"none", nil, ""},
		{"default avatar only", []*peopleapi.Photo{{Url: "https://lh3/default", Default: true}}, ""},
		{"own photo after default", []*peopleapi.Photo{
			{Url: "https://lh3/default", Default: true},
			{Url: "https://lh3/ada"},
		}, "https://lh3/ada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PhotoURL(&peopleapi.Person{Photos: tt.photos}))
		})
	}
}
