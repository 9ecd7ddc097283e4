package vcard

import (
	"bufio"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	govcard "github.com/emersion/go-vcard"

	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
	"github.com/custodia-labs/addrbook/internal/logger"
)

// Ensure Writer implements the interface.
var _ driven.ContactSink = (*Writer)(nil)

// Writer writes contacts to a single vCard 4.0 file.
// Each ReplaceContacts call rewrites the whole file, so the container ID is
// only logged.
type Writer struct {
	path string
	mu   sync.Mutex
}

// NewWriter creates a writer for path. The parent directory is created on
// first write.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the output file path.
func (w *Writer) Path() string {
	return w.path
}

// ReplaceContacts writes contacts to a temporary file and renames it over
// the output, so readers never see a partial file.
func (w *Writer) ReplaceContacts(ctx context.Context, containerID string, contacts []domain.Contact) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(w.path), ".addrbook-*.vcf")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	buf := bufio.NewWriter(tmp)
	enc := govcard.NewEncoder(buf)
	for _, c := range contacts {
		if err := ctx.Err(); err != nil {
			tmp.Close()
			return err
		}
		if err := enc.Encode(ContactToCard(c)); err != nil {
			tmp.Close()
			return fmt.Errorf("encoding contact %s: %w", c.ID, err)
		}
	}
	if err := buf.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), w.path); err != nil {
		return fmt.Errorf("replacing %s: %w", w.path, err)
	}

	logger.Info("vcard: wrote %d contacts from %s to %s", len(contacts), containerID, w.path)
	return nil
}

// Close is a no-op; every write is complete when ReplaceContacts returns.
func (w *Writer) Close() error {
	return nil
}

// ContactToCard encodes a contact as a vCard 4.0 card.
func ContactToCard(c domain.Contact) govcard.Card {
	card := make(govcard.Card)
	card.SetValue(govcard.FieldVersion, "4.0")
	card.SetValue(govcard.FieldUID, c.ID)

	given := textValue(c, domain.FieldGivenName)
	family := textValue(c, domain.FieldFamilyName)
	middle := textValue(c, domain.FieldMiddleName)
	card.SetName(&govcard.Name{GivenName: given, FamilyName: family, AdditionalName: middle})

	formatted := strings.Join(nonEmpty(given, middle, family), " ")
	if formatted == "" {
		formatted = textValue(c, domain.FieldOrganizationName)
	}
	card.SetValue(govcard.FieldFormattedName, formatted)

	setText(card, govcard.FieldNickname, textValue(c, domain.FieldNickname))
	setText(card, govcard.FieldOrganization, textValue(c, domain.FieldOrganizationName))
	setText(card, govcard.FieldTitle, textValue(c, domain.FieldJobTitle))
	setText(card, govcard.FieldNote, textValue(c, domain.FieldNote))

	for _, l := range labeledValues(c, domain.FieldEmailAddresses) {
		if t, ok := l.Payload.(domain.Text); ok {
			card.Add(govcard.FieldEmail, typedField(string(t), l.Label))
		}
	}
	for _, l := range labeledValues(c, domain.FieldURLAddresses) {
		if t, ok := l.Payload.(domain.Text); ok {
			card.Add(govcard.FieldURL, typedField(string(t), l.Label))
		}
	}
	for _, l := range labeledValues(c, domain.FieldPhoneNumbers) {
		if p, ok := l.Payload.(domain.PhoneNumber); ok {
			card.Add(govcard.FieldTelephone, typedField(p.StringValue, l.Label))
		}
	}
	for _, l := range labeledValues(c, domain.FieldPostalAddresses) {
		if a, ok := l.Payload.(domain.PostalAddress); ok {
			card.AddAddress(&govcard.Address{
				Field:         typedField("", l.Label),
				StreetAddress: a.Street,
				Locality:      a.City,
				Region:        a.State,
				PostalCode:    a.PostalCode,
				Country:       a.Country,
			})
		}
	}
	for _, l := range labeledValues(c, domain.FieldInstantMessageAddresses) {
		if im, ok := l.Payload.(domain.InstantMessageAddress); ok {
			value := im.Username
			if im.Service != "" {
				value = strings.ToLower(im.Service) + ":" + im.Username
			}
			f := typedField(value, l.Label)
			if im.Service != "" {
				f.Params.Set(paramServiceType, im.Service)
			}
			card.Add(govcard.FieldIMPP, f)
		}
	}
	for _, l := range labeledValues(c, domain.FieldSocialProfiles) {
		if sp, ok := l.Payload.(domain.SocialProfile); ok {
			f := typedField(sp.URLString, l.Label)
			if sp.Service != "" {
				f.Params.Set(paramServiceType, sp.Service)
			}
			if sp.Username != "" {
				f.Params.Set(paramSocialUser, sp.Username)
			}
			if sp.UserIdentifier != "" {
				f.Params.Set(paramSocialUserID, sp.UserIdentifier)
			}
			card.Add(fieldSocialProfile, f)
		}
	}
	for _, l := range labeledValues(c, domain.FieldContactRelations) {
		if r, ok := l.Payload.(domain.ContactRelation); ok {
			f := typedField(r.Name, l.Label)
			f.Params.Set("VALUE", "text")
			card.Add(govcard.FieldRelated, f)
		}
	}
	for _, l := range labeledValues(c, domain.FieldBirthday) {
		if d, ok := l.Payload.(domain.DateComponents); ok {
			card.SetValue(govcard.FieldBirthday, FormatDate(d))
		}
	}
	for _, l := range labeledValues(c, domain.FieldDates) {
		if d, ok := l.Payload.(domain.DateComponents); ok {
			card.Add(govcard.FieldAnniversary, &govcard.Field{Value: FormatDate(d)})
		}
	}

	if v, ok := c.Value(domain.FieldImageData); ok {
		if b, isBlob := v.(domain.Blob); isBlob && len(b) > 0 {
			card.SetValue(govcard.FieldPhoto, "data:"+sniffImageType(b)+dataURIBase64Marker+base64.StdEncoding.EncodeToString(b))
		}
	}

	return card
}

// FormatDate renders a date the way BDAY expects; unknown years use the
// "--MMDD" form.
func FormatDate(d domain.DateComponents) string {
	if d.Year == 0 {
		return fmt.Sprintf("--%02d%02d", d.Month, d.Day)
	}
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

func textValue(c domain.Contact, key domain.FieldKey) string {
	v, ok := c.Value(key)
	if !ok {
		return ""
	}
	if t, ok := v.(domain.Text); ok {
		return string(t)
	}
	return ""
}

// labeledValues returns the labeled values of a field, whether it holds a
// single Labeled or a Sequence of them.
func labeledValues(c domain.Contact, key domain.FieldKey) []domain.Labeled {
	v, ok := c.Value(key)
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case domain.Labeled:
		return []domain.Labeled{val}
	case domain.Sequence:
		out := make([]domain.Labeled, 0, len(val))
		for _, e := range val {
			switch item := e.(type) {
			case domain.Labeled:
				out = append(out, item)
			case domain.Text:
				out = append(out, domain.Label("", item))
			}
		}
		return out
	default:
		return nil
	}
}

func typedField(value, label string) *govcard.Field {
	f := &govcard.Field{Value: value, Params: make(govcard.Params)}
	if label != "" {
		f.Params.Set(govcard.ParamType, strings.ToLower(label))
	}
	return f
}

func setText(card govcard.Card, key, value string) {
	if value != "" {
		card.SetValue(key, value)
	}
}

func nonEmpty(parts ...string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func sniffImageType(b []byte) string {
	switch {
	case len(b) >= 3 && b[0] == 0xff && b[1] == 0xd8 && b[2] == 0xff:
		return "image/jpeg"
	case len(b) >= 8 && string(b[1:4]) == "PNG":
		return "image/png"
	case len(b) >= 4 && string(b[:4]) == "GIF8":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
