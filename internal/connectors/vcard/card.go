package vcard

import (
	"encoding/base64"
	"strconv"
	"strings"

	govcard "github.com/emersion/go-vcard"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

// Apple-style extension properties understood alongside RFC 6350 ones.
const (
	fieldSocialProfile  = "X-SOCIALPROFILE"
	fieldRelatedNames   = "X-ABRELATEDNAMES"
	paramSocialUser     = "X-USER"
	paramSocialUserID   = "X-USERID"
	paramServiceType    = "X-SERVICE-TYPE"
	paramEncoding       = "ENCODING"
	birthdayLabel       = "birthday"
	dataURIBase64Marker = ";base64,"
)

// CardToContact converts a parsed card into a contact holding the
// requested keys. Single-valued text fields are always present (possibly
// empty) and multi-valued fields are always a sequence.
//
//nolint:gocyclo // one case per field key
func CardToContact(id string, card govcard.Card, keys []domain.FieldKey) domain.Contact {
	c := domain.NewContact(id)
	name := card.Name()
	if name == nil {
		name = &govcard.Name{}
	}

	for _, key := range keys {
		switch key {
		case domain.FieldGivenName:
			c.Set(key, domain.Text(name.GivenName))
		case domain.FieldFamilyName:
			c.Set(key, domain.Text(name.FamilyName))
		case domain.FieldMiddleName:
			c.Set(key, domain.Text(name.AdditionalName))
		case domain.FieldNickname:
			c.Set(key, domain.Text(firstComponent(card.PreferredValue(govcard.FieldNickname), ",")))
		case domain.FieldOrganizationName:
			c.Set(key, domain.Text(firstComponent(card.PreferredValue(govcard.FieldOrganization), ";")))
		case domain.FieldJobTitle:
			c.Set(key, domain.Text(card.PreferredValue(govcard.FieldTitle)))
		case domain.FieldNote:
			c.Set(key, domain.Text(card.PreferredValue(govcard.FieldNote)))
		case domain.FieldEmailAddresses:
			c.Set(key, labeledTexts(card[govcard.FieldEmail]))
		case domain.FieldURLAddresses:
			c.Set(key, labeledTexts(card[govcard.FieldURL]))
		case domain.FieldPostalAddresses:
			c.Set(key, postalAddresses(card.Addresses()))
		case domain.FieldPhoneNumbers:
			c.Set(key, phoneNumbers(card[govcard.FieldTelephone]))
		case domain.FieldInstantMessageAddresses:
			c.Set(key, imAddresses(card[govcard.FieldIMPP]))
		case domain.FieldSocialProfiles:
			c.Set(key, socialProfiles(card[fieldSocialProfile]))
		case domain.FieldContactRelations:
			c.Set(key, relations(card))
		case domain.FieldImageData:
			if photo := photoData(card.Get(govcard.FieldPhoto)); photo != nil {
				c.Set(key, domain.Blob(photo))
			}
		case domain.FieldBirthday:
			if d, ok := ParseDate(card.Value(govcard.FieldBirthday)); ok {
				c.Set(key, domain.Label(birthdayLabel, d))
			}
		case domain.FieldDates:
			c.Set(key, anniversaries(card))
		}
	}

	return c
}

// label returns the first meaningful TYPE parameter of a property.
func label(f *govcard.Field) string {
	if f == nil {
		return ""
	}
	for _, raw := range f.Params[govcard.ParamType] {
		for _, t := range strings.Split(raw, ",") {
			t = strings.ToLower(strings.TrimSpace(t))
			switch t {
			case "", "pref", "internet", "voice", "x400":
				continue
			}
			return t
		}
	}
	return ""
}

func firstComponent(v, sep string) string {
	if i := strings.Index(v, sep); i >= 0 {
		return strings.TrimSpace(v[:i])
	}
	return strings.TrimSpace(v)
}

func labeledTexts(fields []*govcard.Field) domain.Sequence {
	out := domain.Sequence{}
	for _, f := range fields {
		if f == nil || f.Value == "" {
			continue
		}
		out = append(out, domain.Label(label(f), domain.Text(f.Value)))
	}
	return out
}

func phoneNumbers(fields []*govcard.Field) domain.Sequence {
	out := domain.Sequence{}
	for _, f := range fields {
		if f == nil || f.Value == "" {
			continue
		}
		out = append(out, domain.Label(label(f), domain.PhoneNumber{
			StringValue: strings.TrimPrefix(f.Value, "tel:"),
		}))
	}
	return out
}

func postalAddresses(addrs []*govcard.Address) domain.Sequence {
	out := domain.Sequence{}
	for _, a := range addrs {
		if a == nil {
			continue
		}
		out = append(out, domain.Label(label(a.Field), domain.PostalAddress{
			Street:     a.StreetAddress,
			City:       a.Locality,
			State:      a.Region,
			PostalCode: a.PostalCode,
			Country:    a.Country,
		}))
	}
	return out
}

// imAddresses maps IMPP URIs such as "xmpp:ada@example.com".
func imAddresses(fields []*govcard.Field) domain.Sequence {
	out := domain.Sequence{}
	for _, f := range fields {
		if f == nil || f.Value == "" {
			continue
		}
		service, user := "", f.Value
		if scheme, rest, ok := strings.Cut(f.Value, ":"); ok {
			service, user = scheme, rest
		}
		if st := f.Params.Get(paramServiceType); st != "" {
			service = st
		}
		out = append(out, domain.Label(label(f), domain.InstantMessageAddress{
			Username: user,
			Service:  service,
		}))
	}
	return out
}

func socialProfiles(fields []*govcard.Field) domain.Sequence {
	out := domain.Sequence{}
	for _, f := range fields {
		if f == nil {
			continue
		}
		lbl := label(f)
		service := f.Params.Get(paramServiceType)
		if service == "" {
			service = lbl
		}
		out = append(out, domain.Label(lbl, domain.SocialProfile{
			Service:        service,
			Username:       f.Params.Get(paramSocialUser),
			URLString:      f.Value,
			UserIdentifier: f.Params.Get(paramSocialUserID),
		}))
	}
	return out
}

func relations(card govcard.Card) domain.Sequence {
	out := domain.Sequence{}
	for _, key := range []string{govcard.FieldRelated, fieldRelatedNames} {
		for _, f := range card[key] {
			if f == nil || f.Value == "" {
				continue
			}
			out = append(out, domain.Label(label(f), domain.ContactRelation{Name: f.Value}))
		}
	}
	return out
}

func anniversaries(card govcard.Card) domain.Sequence {
	out := domain.Sequence{}
	for _, f := range card[govcard.FieldAnniversary] {
		if f == nil {
			continue
		}
		if d, ok := ParseDate(f.Value); ok {
			out = append(out, domain.Label("anniversary", d))
		}
	}
	return out
}

// photoData decodes an inline photo: a data: URI (vCard 4) or a base64
// value with ENCODING=b (vCard 3). Photos given by URL are not fetched.
func photoData(f *govcard.Field) []byte {
	if f == nil || f.Value == "" {
		return nil
	}

	value := strings.ReplaceAll(f.Value, `\,`, ",")
	raw := ""
	switch {
	case strings.HasPrefix(value, "data:"):
		i := strings.Index(value, dataURIBase64Marker)
		if i < 0 {
			return nil
		}
		raw = value[i+len(dataURIBase64Marker):]
	case isBase64Encoding(f.Params.Get(paramEncoding)):
		raw = value
	default:
		return nil
	}

	data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(raw), ""))
	if err != nil {
		return nil
	}
	return data
}

func isBase64Encoding(enc string) bool {
	enc = strings.ToLower(enc)
	return enc == "b" || enc == "base64"
}

// ParseDate parses the date forms vCard uses for BDAY and ANNIVERSARY:
// "1815-12-10", "18151210", "--1210" and "--12-10". Times after a "T" are
// ignored.
func ParseDate(v string) (domain.DateComponents, bool) {
	v = strings.TrimSpace(v)
	if i := strings.IndexByte(v, 'T'); i >= 0 {
		v = v[:i]
	}

	year := 0
	if strings.HasPrefix(v, "--") {
		v = v[2:]
	} else {
		if len(v) < 4 {
			return domain.DateComponents{}, false
		}
		y, err := strconv.Atoi(v[:4])
		if err != nil {
			return domain.DateComponents{}, false
		}
		year = y
		v = strings.TrimPrefix(v[4:], "-")
	}

	v = strings.ReplaceAll(v, "-", "")
	if len(v) != 4 {
		return domain.DateComponents{}, false
	}
	month, err1 := strconv.Atoi(v[:2])
	day, err2 := strconv.Atoi(v[2:])
	if err1 != nil || err2 != nil || month < 1 || month > 12 || day < 1 || day > 31 {
		return domain.DateComponents{}, false
	}

	return domain.DateComponents{Year: year, Month: month, Day: day}, true
}
