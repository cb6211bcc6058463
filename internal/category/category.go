// Package category defines the closed vocabulary of news categories the
// classifiers emit and the news sentiment provider accepts as topics.
package category

import (
	"fmt"
	"strings"
)

// Code identifies one news category.
type Code string

const (
	Blockchain             Code = "blockchain"
	Earnings               Code = "earnings"
	IPO                    Code = "ipo"
	MergersAndAcquisitions Code = "mergers_and_acquisitions"
	FinancialMarkets       Code = "financial_markets"
	EconomyFiscal          Code = "economy_fiscal"
	EconomyMonetary        Code = "economy_monetary"
	EconomyMacro           Code = "economy_macro"
	EnergyTransportation   Code = "energy_transportation"
	Finance                Code = "finance"
	LifeSciences           Code = "life_sciences"
	Manufacturing          Code = "manufacturing"
	RealEstate             Code = "real_estate"
	RetailWholesale        Code = "retail_wholesale"
	Technology             Code = "technology"
)

// Baseline is included in every classification result.
const Baseline = EconomyMacro

type info struct {
	code        Code
	label       string
	description string
}

// declared is the canonical order. Output ordering depends on it.
var declared = [...]info{
	{Blockchain, "Blockchain", "Blockchain and cryptocurrency news"},
	{Earnings, "Earnings", "Company earnings reports and analysis"},
	{IPO, "IPO", "Initial Public Offerings and new stock listings"},
	{MergersAndAcquisitions, "Mergers & Acquisitions", "M&A activity and corporate deals"},
	{FinancialMarkets, "Financial Markets", "General financial market movements and analysis"},
	{EconomyFiscal, "Economy - Fiscal Policy", "Government fiscal policy, taxes, spending"},
	{EconomyMonetary, "Economy - Monetary Policy", "Central bank policy, interest rates, money supply"},
	{EconomyMacro, "Economy - Macro/Overall", "Overall economic indicators, GDP, employment"},
	{EnergyTransportation, "Energy & Transportation", "Energy sector and transportation industry"},
	{Finance, "Finance", "General finance, banking, lending"},
	{LifeSciences, "Life Sciences", "Biotechnology, healthcare, pharmaceuticals"},
	{Manufacturing, "Manufacturing", "Manufacturing and industrial sector"},
	{RealEstate, "Real Estate & Construction", "Real estate markets and construction"},
	{RetailWholesale, "Retail & Wholesale", "Retail and wholesale trade sectors"},
	{Technology, "Technology", "Technology sector and innovation"},
}

var index = func() map[Code]int {
	m := make(map[Code]int, len(declared))
	for i, d := range declared {
		m[d.code] = i
	}
	return m
}()

// All returns every code in declaration order. The slice is a fresh copy.
func All() []Code {
	out := make([]Code, len(declared))
	for i, d := range declared {
		out[i] = d.code
	}
	return out
}

// Count is the size of the vocabulary.
func Count() int { return len(declared) }

// Valid reports whether c belongs to the vocabulary.
func (c Code) Valid() bool {
	_, ok := index[c]
	return ok
}

// Label returns the human-readable name, or the raw code when unknown.
func (c Code) Label() string {
	if i, ok := index[c]; ok {
		return declared[i].label
	}
	return string(c)
}

// Description is a one-line summary of what the category covers.
func (c Code) Description() string {
	if i, ok := index[c]; ok {
		return declared[i].description
	}
	return ""
}

func (c Code) String() string { return string(c) }

// Parse normalises s and returns the matching code.
func Parse(s string) (Code, error) {
	c := Code(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown news category %q", s)
	}
	return c, nil
}
