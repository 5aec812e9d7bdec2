package ledger

import (
	"sort"

	"github.com/gstbill/backend/internal/domain/shared/valueobject"
)

// RunningBalances orders the entries chronologically (date ascending,
// insertion order as tiebreak) and stamps each entry's cumulative
// balance. The sign convention is positive = customer owes the
// business (Dr), negative = business owes the customer (Cr).
//
// The input slice is not modified; a sorted copy is returned.
func RunningBalances(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].Seq < sorted[j].Seq
	})

	balance := valueobject.ZeroINR()
	for i := range sorted {
		balance = balance.MustAdd(sorted[i].SignedAmount())
		sorted[i].RunningBalance = balance
	}
	return sorted
}

// ClosingBalance returns the cumulative balance after all entries
func ClosingBalance(entries []Entry) valueobject.Money {
	balance := valueobject.ZeroINR()
	for i := range entries {
		balance = balance.MustAdd(entries[i].SignedAmount())
	}
	return balance
}

// BalanceSide renders the bookkeeping side of a balance: "Dr" when the
// customer owes the business, "Cr" when the business owes the customer.
func BalanceSide(balance valueobject.Money) string {
	if balance.IsNegative() {
		return "Cr"
	}
	return "Dr"
}
