package calculator

import "sort"

// settleThreshold ignores sub-cent leftovers when matching transfers.
const settleThreshold = 0.01

// SettlementPlan suggests a short list of transfers that would bring every
// net balance to zero. It works from net balances only, so it can route money
// between friends who never shared an expense; the pairwise Ledger remains
// the authoritative "who owes whom" view.
//
// Greedy algorithm: match the largest debts with the largest credits.
func SettlementPlan(friends []FriendBalance) []DebtEdge {
	type side struct {
		id     string
		amount float64
	}

	var creditors, debtors []side
	for _, f := range friends {
		if f.NetBalance > settleThreshold {
			creditors = append(creditors, side{f.FriendID, f.NetBalance})
		} else if f.NetBalance < -settleThreshold {
			debtors = append(debtors, side{f.FriendID, -f.NetBalance}) // Make positive
		}
	}

	byAmount := func(s []side) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].amount != s[j].amount {
				return s[i].amount > s[j].amount
			}
			return s[i].id < s[j].id
		}
	}
	sort.Slice(creditors, byAmount(creditors))
	sort.Slice(debtors, byAmount(debtors))

	var transfers []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := debtor.amount
		if creditor.amount < amount {
			amount = creditor.amount
		}

		if amount > settleThreshold {
			transfers = append(transfers, DebtEdge{
				From:   debtor.id,
				To:     creditor.id,
				Amount: amount,
			})
		}

		debtor.amount -= amount
		creditor.amount -= amount

		// Move to next debtor/creditor if fully settled
		if debtor.amount < settleThreshold {
			i++
		}
		if creditor.amount < settleThreshold {
			j++
		}
	}

	return transfers
}
