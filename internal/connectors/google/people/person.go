package people

import (
	"sort"
	"strings"

	peopleapi "google.golang.org/api/people/v1"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

// personFields maps each field key to the People API person field that backs it.
var personFields = map[domain.FieldKey]string{
	domain.FieldGivenName:               "names",
	domain.FieldFamilyName:              "names",
	domain.FieldMiddleName:              "names",
	domain.FieldNickname:                "nicknames",
	domain.FieldOrganizationName:        "organizations",
	domain.FieldJobTitle:                "organizations",
	domain.FieldNote:                    "biographies",
	domain.FieldEmailAddresses:          "emailAddresses",
	domain.FieldPostalAddresses:         "addresses",
	domain.FieldPhoneNumbers:            "phoneNumbers",
	domain.FieldImageData:               "photos",
	domain.FieldInstantMessageAddresses: "imClients",
	domain.FieldURLAddresses:            "urls",
	domain.FieldBirthday:                "birthdays",
	domain.FieldDates:                   "events",
	domain.FieldContactRelations:        "relations",
}

// personFieldMask builds the personFields parameter for the requested keys.
// The API rejects an empty mask, so "metadata" is used when nothing maps.
func personFieldMask(keys []domain.FieldKey) string {
	seen := make(map[string]bool)
	for _, k := range keys {
		if f, ok := personFields[k]; ok {
			seen[f] = true
		}
	}
	if len(seen) == 0 {
		return "metadata"
	}

	fields := make([]string, 0, len(seen))
	for f := range seen {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return strings.Join(fields, ",")
}

// PersonToContact converts a People API person into a contact holding the
// requested keys. Single-valued text fields are always present (possibly
// empty) and multi-valued fields are always a sequence, as in a native
// address book. photo is the downloaded image, or nil.
//
//nolint:gocyclo // one case per field key
func PersonToContact(p *peopleapi.Person, keys []domain.FieldKey, photo []byte) domain.Contact {
	c := domain.NewContact(p.ResourceName)
	name := primaryName(p.Names)
	org := primaryOrganization(p.Organizations)

	for _, key := range keys {
		switch key {
		case domain.FieldGivenName:
			c.Set(key, domain.Text(name.GivenName))
		case domain.FieldFamilyName:
			c.Set(key, domain.Text(name.FamilyName))
		case domain.FieldMiddleName:
			c.Set(key, domain.Text(name.MiddleName))
		case domain.FieldNickname:
			c.Set(key, domain.Text(firstNickname(p.Nicknames)))
		case domain.FieldOrganizationName:
			c.Set(key, domain.Text(org.Name))
		case domain.FieldJobTitle:
			c.Set(key, domain.Text(org.Title))
		case domain.FieldNote:
			c.Set(key, domain.Text(firstBiography(p.Biographies)))
		case domain.FieldEmailAddresses:
			c.Set(key, emailAddresses(p.EmailAddresses))
		case domain.FieldPostalAddresses:
			c.Set(key, postalAddresses(p.Addresses))
		case domain.FieldPhoneNumbers:
			c.Set(key, phoneNumbers(p.PhoneNumbers))
		case domain.FieldInstantMessageAddresses:
			c.Set(key, imClients(p.ImClients))
		case domain.FieldURLAddresses:
			c.Set(key, urls(p.Urls))
		case domain.FieldSocialProfiles:
			// The People API has no social profile field.
			c.Set(key, domain.Sequence{})
		case domain.FieldImageData:
			if photo != nil {
				c.Set(key, domain.Blob(photo))
			}
		case domain.FieldBirthday:
			if b := birthday(p.Birthdays); b != nil {
				c.Set(key, b)
			}
		case domain.FieldDates:
			c.Set(key, events(p.Events))
		case domain.FieldContactRelations:
			c.Set(key, relations(p.Relations))
		}
	}

	return c
}

// PhotoURL returns the URL of the contact's own photo, or "" when the
// person only has the generated default avatar.
func PhotoURL(p *peopleapi.Person) string {
	for _, ph := range p.Photos {
		if ph != nil && !ph.Default && ph.Url != "" {
			return ph.Url
		}
	}
	return ""
}

func isPrimary(m *peopleapi.FieldMetadata) bool {
	return m != nil && m.Primary
}

func primaryName(names []*peopleapi.Name) peopleapi.Name {
	var first *peopleapi.Name
	for _, n := range names {
		if n == nil {
			continue
		}
		if isPrimary(n.Metadata) {
			return *n
		}
		if first == nil {
			first = n
		}
	}
	if first == nil {
		return peopleapi.Name{}
	}
	return *first
}

func primaryOrganization(orgs []*peopleapi.Organization) peopleapi.Organization {
	var first *peopleapi.Organization
	for _, o := range orgs {
		if o == nil {
			continue
		}
		if isPrimary(o.Metadata) {
			return *o
		}
		if first == nil {
			first = o
		}
	}
	if first == nil {
		return peopleapi.Organization{}
	}
	return *first
}

func firstNickname(nicks []*peopleapi.Nickname) string {
	for _, n := range nicks {
		if n != nil && n.Value != "" {
			return n.Value
		}
	}
	return ""
}

func firstBiography(bios []*peopleapi.Biography) string {
	for _, b := range bios {
		if b != nil && b.Value != "" {
			return b.Value
		}
	}
	return ""
}

func emailAddresses(in []*peopleapi.EmailAddress) domain.Sequence {
	out := domain.Sequence{}
	for _, e := range in {
		if e == nil {
			continue
		}
		out = append(out, domain.Label(e.Type, domain.Text(e.Value)))
	}
	return out
}

func postalAddresses(in []*peopleapi.Address) domain.Sequence {
	out := domain.Sequence{}
	for _, a := range in {
		if a == nil {
			continue
		}
		out = append(out, domain.Label(a.Type, domain.PostalAddress{
			Street:     a.StreetAddress,
			City:       a.City,
			State:      a.Region,
			PostalCode: a.PostalCode,
			Country:    a.Country,
		}))
	}
	return out
}

func phoneNumbers(in []*peopleapi.PhoneNumber) domain.Sequence {
	out := domain.Sequence{}
	for _, ph := range in {
		if ph == nil {
			continue
		}
		out = append(out, domain.Label(ph.Type, domain.PhoneNumber{StringValue: ph.Value}))
	}
	return out
}

func imClients(in []*peopleapi.ImClient) domain.Sequence {
	out := domain.Sequence{}
	for _, im := range in {
		if im == nil {
			continue
		}
		service := im.FormattedProtocol
		if service == "" {
			service = im.Protocol
		}
		out = append(out, domain.Label(im.Type, domain.InstantMessageAddress{
			Username: im.Username,
			Service:  service,
		}))
	}
	return out
}

func urls(in []*peopleapi.Url) domain.Sequence {
	out := domain.Sequence{}
	for _, u := range in {
		if u == nil {
			continue
		}
		out = append(out, domain.Label(u.Type, domain.Text(u.Value)))
	}
	return out
}

func dateComponents(d *peopleapi.Date) domain.DateComponents {
	return domain.DateComponents{
		Year:  int(d.Year),
		Month: int(d.Month),
		Day:   int(d.Day),
	}
}

func birthday(in []*peopleapi.Birthday) domain.FieldValue {
	for _, b := range in {
		if b != nil && b.Date != nil {
			return domain.Label("birthday", dateComponents(b.Date))
		}
	}
	return nil
}

func events(in []*peopleapi.Event) domain.Sequence {
	out := domain.Sequence{}
	for _, e := range in {
		if e == nil || e.Date == nil {
			continue
		}
		out = append(out, domain.Label(e.Type, dateComponents(e.Date)))
	}
	return out
}

func relations(in []*peopleapi.Relation) domain.Sequence {
	out := domain.Sequence{}
	for _, r := range in {
		if r == nil {
			continue
		}
		out = append(out, domain.Label(r.Type, domain.ContactRelation{Name: r.Person}))
	}
	return out
}
