package profile

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/newscat-core/server/internal/core/error"
)

func TestDecode(t *testing.T) {
	p, err := DecodeString(`{
		"accounts": [{"type": "Investment"}, {"type": "bank", "balance": 12}],
		"credit_cards": [{"issuer": "Chase"}],
		"loans": null
	}`)
	require.NoError(t, err)

	assert.Equal(t, []Entry{{Type: "Investment"}, {Type: "bank"}}, p.Accounts)
	assert.Len(t, p.CreditCards, 1)
	assert.Empty(t, p.Loans)
	assert.Empty(t, p.Investments)
	assert.False(t, p.IsEmpty())
}

func TestDecodeCreditCardsCountAnyElement(t *testing.T) {
	tests := map[string]string{
		"string":      `{"credit_cards": ["Chase"]}`,
		"number":      `{"credit_cards": [1]}`,
		"null":        `{"credit_cards": [null]}`,
		"nested list": `{"credit_cards": [["visa"]]}`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := DecodeString(in)
			require.NoError(t, err)
			assert.Len(t, p.CreditCards, 1)
			assert.False(t, p.IsEmpty())
		})
	}

	p, err := DecodeString(`{"credit_cards": ["Chase", {"issuer": "Amex"}]}`)
	require.NoError(t, err)
	assert.Equal(t, []CreditCard{{"value": "Chase"}, {"issuer": "Amex"}}, p.CreditCards)
}

func TestDecodeEmptyObject(t *testing.T) {
	p, err := DecodeString(`{}`)
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
}

func TestDecodeMissingTypeIsEmptyString(t *testing.T) {
	p, err := DecodeString(`{"loans": [{}, {"type": null}]}`)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{}, {}}, p.Loans)
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"empty":        ``,
		"syntax":       `{"accounts": [`,
		"wrong shape":  `{"accounts": {"type": "bank"}}`,
		"numeric type": `{"loans": [{"type": 7}]}`,
		"trailing":     `{} {}`,
		"not object":   `"bank"`,
		"stray brace":  `{} }`,
		"stray close":  `{} ]`,
		"null":         `null`,
		"array":        `[{"type": "bank"}]`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeString(in)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, errx.StatusOf(err))
		})
	}
}

func TestParseEntries(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Entry
	}{
		{"blank", "  ", nil},
		{"json array", `[{"type":"crypto"},{"type":"bank"}]`, []Entry{{Type: "crypto"}, {Type: "bank"}}},
		{"json object", `{"type":"mortgage"}`, []Entry{{Type: "mortgage"}}},
		{"comma list", "student_loan, mortgage ,auto", []Entry{{Type: "student_loan"}, {Type: "mortgage"}, {Type: "auto"}}},
		{"single word", "retirement", []Entry{{Type: "retirement"}}},
		{"broken json", `[{"type":`, []Entry{{Type: `[{"type":`}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEntries(tt.in))
		})
	}
}

func TestParseCreditCards(t *testing.T) {
	assert.Nil(t, ParseCreditCards(""))
	assert.Empty(t, ParseCreditCards("[]"))
	assert.Len(t, ParseCreditCards(`[{"issuer":"Chase"},{}]`), 2)
	assert.Equal(t, []CreditCard{{"issuer": "Amex"}}, ParseCreditCards(`{"issuer":"Amex"}`))
	assert.Equal(t, []CreditCard{{"issuer": "Chase"}, {"issuer": "Amex"}}, ParseCreditCards("Chase, Amex"))
}

func TestFromFields(t *testing.T) {
	p := FromFields(Fields{
		Accounts:    "crypto,bank",
		Loans:       `[{"type":"mortgage"}]`,
		Investments: "etf",
	})
	assert.Equal(t, []Entry{{Type: "crypto"}, {Type: "bank"}}, p.Accounts)
	assert.Equal(t, []Entry{{Type: "mortgage"}}, p.Loans)
	assert.Equal(t, []Entry{{Type: "etf"}}, p.Investments)
	assert.Empty(t, p.CreditCards)
}
