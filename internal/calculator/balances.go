package calculator

import "sort"

// Epsilon is the magnitude below which an amount is treated as zero by the
// query views. Raw arithmetic is never rounded.
const Epsilon = 1e-9

// ExpenseForBalance represents an expense with the minimal information needed
// for balance calculations.
type ExpenseForBalance struct {
	Amount    float64
	PaidBy    string
	SplitWith []string
	Settled   bool
}

// FriendBalance represents the balance information for one friend.
type FriendBalance struct {
	FriendID   string
	NetBalance float64 // Positive = owed money, Negative = owes money
	TotalPaid  float64 // Total amount fronted across counted expenses
	TotalShare float64 // Total of this friend's shares across counted expenses
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount float64
}

// Balances is the result of one engine run. It shares no memory with the
// inputs and is safe to hand to any number of readers.
type Balances struct {
	// Policy is the ledger policy the expenses were filtered with.
	Policy Policy

	// Net maps friend ID to signed net balance.
	Net map[string]float64

	// Friends lists per-friend totals in the order friend IDs were given.
	Friends []FriendBalance

	// Ledger is the simplified pairwise ledger.
	Ledger *Ledger

	// ExpensesConsidered counts expenses that passed the policy and had at
	// least one participant.
	ExpensesConsidered int
}

// CalculateBalances computes net balances and the simplified pairwise ledger
// for a trip.
//
// Algorithm:
//   - every friend starts at zero
//   - expenses excluded by policy, or with no participants, are skipped
//   - share = amount / len(split); payer is credited the full amount and each
//     participant is debited one share (so a payer in the split bears their own)
//   - every participant other than the payer owes the payer one share
//   - mutual pairwise debts are then netted so only one direction remains
//
// Friend IDs referenced by expenses but missing from friendIDs still get a
// balance; referential integrity is the store's job.
func CalculateBalances(friendIDs []string, expenses []ExpenseForBalance, policy Policy) *Balances {
	if policy == "" {
		policy = DefaultPolicy
	}

	net := make(map[string]float64, len(friendIDs))
	paid := make(map[string]float64, len(friendIDs))
	shares := make(map[string]float64, len(friendIDs))
	for _, id := range friendIDs {
		net[id] = 0
	}

	ledger := newLedger()
	considered := 0

	for _, e := range expenses {
		if !policy.Includes(e) {
			continue
		}
		share, ok := EqualShare(e.Amount, len(e.SplitWith))
		if !ok {
			continue
		}
		considered++

		net[e.PaidBy] += e.Amount
		paid[e.PaidBy] += e.Amount
		for _, p := range e.SplitWith {
			net[p] -= share
			shares[p] += share
			if p != e.PaidBy {
				ledger.add(p, e.PaidBy, share)
			}
		}
	}

	ledger.simplify()

	friends := make([]FriendBalance, len(friendIDs))
	for i, id := range friendIDs {
		friends[i] = FriendBalance{
			FriendID:   id,
			NetBalance: net[id],
			TotalPaid:  paid[id],
			TotalShare: shares[id],
		}
	}

	return &Balances{
		Policy:             policy,
		Net:                net,
		Friends:            friends,
		Ledger:             ledger,
		ExpensesConsidered: considered,
	}
}

// Ledger is a directed weighted graph: owed[debtor][creditor] = amount.
type Ledger struct {
	owed map[string]map[string]float64
	raw  map[string]map[string]float64
}

func newLedger() *Ledger {
	return &Ledger{owed: make(map[string]map[string]float64)}
}

func (l *Ledger) add(debtor, creditor string, amount float64) {
	row, ok := l.owed[debtor]
	if !ok {
		row = make(map[string]float64)
		l.owed[debtor] = row
	}
	row[creditor] += amount
}

func (l *Ledger) get(debtor, creditor string) float64 {
	return l.owed[debtor][creditor]
}

func (l *Ledger) set(debtor, creditor string, amount float64) {
	if _, ok := l.owed[debtor]; !ok {
		l.owed[debtor] = make(map[string]float64)
	}
	l.owed[debtor][creditor] = amount
}

// simplify nets every unordered pair so that at most one direction is non-zero.
func (l *Ledger) simplify() {
	l.raw = cloneMatrix(l.owed)

	type pair struct{ a, b string }
	seen := make(map[pair]bool)
	var pairs []pair
	for a, row := range l.owed {
		for b := range row {
			p := pair{a, b}
			if b < a {
				p = pair{b, a}
			}
			if !seen[p] {
				seen[p] = true
				pairs = append(pairs, p)
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})

	for _, p := range pairs {
		delta := l.get(p.a, p.b) - l.get(p.b, p.a)
		if delta >= 0 {
			l.set(p.a, p.b, delta)
			l.set(p.b, p.a, 0)
		} else {
			l.set(p.b, p.a, -delta)
			l.set(p.a, p.b, 0)
		}
	}
}

// Amount returns how much debtor owes creditor after simplification.
func (l *Ledger) Amount(debtor, creditor string) float64 {
	return l.get(debtor, creditor)
}

// RawAmount returns how much debtor owed creditor before mutual debts were
// netted out.
func (l *Ledger) RawAmount(debtor, creditor string) float64 {
	return l.raw[debtor][creditor]
}

// Owes answers "who does friend X owe": every creditor X owes a non-zero
// amount, sorted by creditor ID.
func (l *Ledger) Owes(friendID string) []DebtEdge {
	var edges []DebtEdge
	for creditor, amount := range l.owed[friendID] {
		if amount > Epsilon {
			edges = append(edges, DebtEdge{From: friendID, To: creditor, Amount: amount})
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].To < edges[j].To })
	return edges
}

// OwedBy answers "who owes friend X": every debtor owing X a non-zero amount,
// sorted by debtor ID.
func (l *Ledger) OwedBy(friendID string) []DebtEdge {
	var edges []DebtEdge
	for debtor, row := range l.owed {
		if amount := row[friendID]; amount > Epsilon {
			edges = append(edges, DebtEdge{From: debtor, To: friendID, Amount: amount})
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].From < edges[j].From })
	return edges
}

// Edges returns every non-zero simplified debt, sorted by debtor then creditor.
func (l *Ledger) Edges() []DebtEdge {
	var edges []DebtEdge
	for debtor, row := range l.owed {
		for creditor, amount := range row {
			if amount > Epsilon {
				edges = append(edges, DebtEdge{From: debtor, To: creditor, Amount: amount})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

func cloneMatrix(m map[string]map[string]float64) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(m))
	for k, row := range m {
		r := make(map[string]float64, len(row))
		for k2, v := range row {
			r[k2] = v
		}
		out[k] = r
	}
	return out
}
