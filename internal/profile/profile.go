// Package profile holds the user's financial profile as the classifiers
// consume it, plus the decoders that build one from JSON or loosely
// formatted tool arguments.
package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	errx "github.com/newscat-core/server/internal/core/error"
)

// Entry is an account, loan or investment record. Only Type drives
// classification; it is matched case-insensitively by substring.
type Entry struct {
	Type string `json:"type"`
}

// CreditCard is an opaque record; classification only looks at presence.
type CreditCard map[string]any

// UnmarshalJSON accepts any JSON value. Objects keep their fields; scalars,
// arrays and null are kept under "value" so the card still counts.
func (c *CreditCard) UnmarshalJSON(b []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err == nil && fields != nil {
		*c = fields
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = CreditCard{"value": v}
	return nil
}

// Profile is the per-call classifier input. Nil and empty slices are equivalent.
type Profile struct {
	Accounts    []Entry      `json:"accounts,omitempty"`
	CreditCards []CreditCard `json:"credit_cards,omitempty"`
	Loans       []Entry      `json:"loans,omitempty"`
	Investments []Entry      `json:"investments,omitempty"`
}

// IsEmpty reports whether the profile carries no records at all.
func (p Profile) IsEmpty() bool {
	return len(p.Accounts) == 0 && len(p.CreditCards) == 0 && len(p.Loans) == 0 && len(p.Investments) == 0
}

// Decode parses a JSON profile object. Missing or null keys yield empty
// sequences; any syntax or type error is returned as a parse error.
func Decode(data []byte) (Profile, error) {
	var p Profile
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return p, errx.WrapParse(errors.New("empty profile document"))
	}
	if trimmed[0] != '{' {
		return p, errx.WrapParse(errors.New("profile document is not a JSON object"))
	}
	// Unmarshal rejects any trailing bytes, including a stray closing delimiter.
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return Profile{}, errx.WrapParse(err)
	}
	return p, nil
}

// DecodeString is Decode for string payloads.
func DecodeString(s string) (Profile, error) {
	return Decode([]byte(s))
}

// ParseEntries accepts the loose formats agents tend to pass as tool
// arguments: a JSON array of records, a single JSON record, or a
// comma-separated list of type names. Unparseable JSON degrades to a single
// entry carrying the raw string as its type.
func ParseEntries(raw string) []Entry {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	switch raw[0] {
	case '[':
		var entries []Entry
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return []Entry{{Type: raw}}
		}
		return entries
	case '{':
		var e Entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return []Entry{{Type: raw}}
		}
		return []Entry{e}
	}

	parts := strings.Split(raw, ",")
	entries := make([]Entry, 0, len(parts))
	for _, part := range parts {
		entries = append(entries, Entry{Type: strings.TrimSpace(part)})
	}
	return entries
}

// ParseCreditCards mirrors ParseEntries for presence-only credit card records.
// Any non-blank input that is not an empty JSON array counts as one card
// per comma-separated item.
func ParseCreditCards(raw string) []CreditCard {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	switch raw[0] {
	case '[':
		var cards []CreditCard
		if err := json.Unmarshal([]byte(raw), &cards); err == nil {
			return cards
		}
	case '{':
		var card CreditCard
		if err := json.Unmarshal([]byte(raw), &card); err == nil {
			return []CreditCard{card}
		}
	}

	var cards []CreditCard
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			cards = append(cards, CreditCard{"issuer": name})
		}
	}
	return cards
}

// Fields are the loosely formatted profile parts an agent tool receives.
type Fields struct {
	Accounts    string `json:"accounts,omitempty"`
	CreditCards string `json:"credit_cards,omitempty"`
	Loans       string `json:"loans,omitempty"`
	Investments string `json:"investments,omitempty"`
}

// FromFields builds a Profile from loosely formatted parts.
func FromFields(f Fields) Profile {
	return Profile{
		Accounts:    ParseEntries(f.Accounts),
		CreditCards: ParseCreditCards(f.CreditCards),
		Loans:       ParseEntries(f.Loans),
		Investments: ParseEntries(f.Investments),
	}
}
