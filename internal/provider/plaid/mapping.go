package plaid

import (
	"strings"

	"github.com/plaid/plaid-go/v20/plaid"

	"github.com/newscat-core/server/internal/profile"
)

var retirementSubtypes = map[string]bool{
	"401a": true, "401k": true, "403b": true, "457b": true,
	"ira": true, "keogh": true, "pension": true, "profit sharing plan": true,
	"retirement": true, "roth": true, "roth 401k": true, "sep ira": true,
	"simple ira": true, "sipp": true, "rrsp": true, "lira": true, "rrif": true,
}

var cryptoSubtypes = map[string]bool{
	"crypto exchange":      true,
	"non-custodial wallet": true,
}

var securityTypes = map[string]string{
	"cryptocurrency": "crypto",
	"equity":         "stock",
	"etf":            "etf",
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func joinType(prefix, subtype string) string {
	if subtype == "" {
		return prefix
	}
	if strings.Contains(subtype, prefix) {
		return subtype
	}
	return prefix + " " + subtype
}

// accountEntryType turns a Plaid account type/subtype pair into the
// classifier's account vocabulary. Loan and credit accounts are handled
// separately and return "".
func accountEntryType(accountType, subtype string) string {
	switch accountType {
	case "depository":
		return joinType("bank", subtype)
	case "investment", "brokerage":
		switch {
		case cryptoSubtypes[subtype]:
			return joinType("crypto", subtype)
		case retirementSubtypes[subtype]:
			return joinType("retirement", subtype)
		default:
			return joinType("investment", subtype)
		}
	case "loan", "credit":
		return ""
	default:
		return joinType(accountType, subtype)
	}
}

func loanEntryType(subtype string) string {
	switch subtype {
	case "student":
		return "student_loan"
	case "mortgage", "home equity":
		return "mortgage"
	case "", "loan", "other":
		return "loan"
	default:
		return subtype + " loan"
	}
}

// ProfileFrom assembles a classifier profile from Plaid accounts, their
// liabilities and held securities. Liabilities refine or extend the loans
// and cards derived from the accounts; nil liabilities are ignored.
func ProfileFrom(accounts []plaid.AccountBase, liabilities *plaid.LiabilitiesObject, holdings []plaid.Holding, securities []plaid.Security) profile.Profile {
	var p profile.Profile

	loanIdx := map[string]int{}
	cardIDs := map[string]bool{}

	for _, acct := range accounts {
		accountType := norm(string(acct.GetType()))
		subtype := norm(string(acct.GetSubtype()))
		id := acct.GetAccountId()

		switch accountType {
		case "loan":
			loanIdx[id] = len(p.Loans)
			p.Loans = append(p.Loans, profile.Entry{Type: loanEntryType(subtype)})
		case "credit":
			cardIDs[id] = true
			p.CreditCards = append(p.CreditCards, profile.CreditCard{"account_id": id, "subtype": subtype})
		default:
			p.Accounts = append(p.Accounts, profile.Entry{Type: accountEntryType(accountType, subtype)})
		}
	}

	if liabilities != nil {
		upsertLoan := func(id, typ string) {
			if i, ok := loanIdx[id]; ok && id != "" {
				p.Loans[i].Type = typ
				return
			}
			if id != "" {
				loanIdx[id] = len(p.Loans)
			}
			p.Loans = append(p.Loans, profile.Entry{Type: typ})
		}
		for _, s := range liabilities.GetStudent() {
			upsertLoan(s.GetAccountId(), "student_loan")
		}
		for _, m := range liabilities.GetMortgage() {
			upsertLoan(m.GetAccountId(), "mortgage")
		}
		for _, c := range liabilities.GetCredit() {
			id := c.GetAccountId()
			if id != "" && cardIDs[id] {
				continue
			}
			cardIDs[id] = true
			p.CreditCards = append(p.CreditCards, profile.CreditCard{"account_id": id})
		}
	}

	secType := make(map[string]string, len(securities))
	for _, s := range securities {
		secType[s.GetSecurityId()] = norm(s.GetType())
	}
	for _, h := range holdings {
		t, ok := secType[h.GetSecurityId()]
		if !ok || t == "" {
			continue
		}
		if mapped, ok := securityTypes[t]; ok {
			t = mapped
		}
		p.Investments = append(p.Investments, profile.Entry{Type: t})
	}

	return p
}
