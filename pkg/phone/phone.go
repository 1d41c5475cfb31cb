// Package phone validates and normalizes phone numbers to E.164.
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var ErrInvalid = errors.New("invalid phone number")

// Normalizer parses numbers written in local or international form.
type Normalizer struct {
	region string
}

// NewNormalizer returns a Normalizer that reads numbers without a country
// prefix as belonging to region (ISO 3166 alpha-2, e.g. "PY").
func NewNormalizer(region string) *Normalizer {
	return &Normalizer{region: strings.ToUpper(region)}
}

// Normalize returns raw in E.164 form. An empty input is returned unchanged.
func (n *Normalizer) Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	num, err := phonenumbers.Parse(raw, n.region)
	if err != nil {
		return "", ErrInvalid
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalid
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// National formats an E.164 number the way it is dialled inside its country.
// Numbers that do not parse are returned as given.
func (n *Normalizer) National(e164 string) string {
	num, err := phonenumbers.Parse(e164, n.region)
	if err != nil {
		return e164
	}
	return phonenumbers.Format(num, phonenumbers.NATIONAL)
}
