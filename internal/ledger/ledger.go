package ledger

import (
	interfaces "github.com/sheikh-saqib/payments-ledger-replay/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

// Ledger is the transaction state machine.
// It owns no state of its own: every rule reads and writes the LedgerStore it was built with.
type Ledger struct {
	store interfaces.LedgerStore // accounts and retained deposit/withdrawal entries
}

// NewLedger creates a Ledger that mutates store.
// The store must not be shared with another Ledger while a run is in progress.
func NewLedger(store interfaces.LedgerStore) *Ledger {
	return &Ledger{
		store: store,
	}
}

// Apply processes one event and reports whether it changed anything.
// Business rule violations come back as Ignored outcomes and leave the store untouched.
func (l *Ledger) Apply(tx models.Transaction) Outcome {
	switch tx.Kind {
	case models.KindDeposit:
		return l.deposit(tx)
	case models.KindWithdrawal:
		return l.withdraw(tx)
	case models.KindDispute:
		return l.dispute(tx)
	case models.KindResolve:
		return l.resolve(tx)
	case models.KindChargeback:
		return l.chargeback(tx)
	}
	return Ignored(ReasonUnknownKind)
}

func (l *Ledger) deposit(tx models.Transaction) Outcome {
	if !tx.Amount.Valid || !tx.Amount.Decimal.IsPositive() {
		return Ignored(ReasonNonPositiveAmount)
	}
	amount := tx.Amount.Decimal

	// Peek first so a deposit to a locked account doesn't touch the store at all.
	if acc, ok := l.store.GetAccount(tx.Client); ok && acc.Locked {
		return Ignored(ReasonAccountLocked)
	}

	acc := l.store.GetOrCreateAccount(tx.Client)
	acc.Available = acc.Available.Add(amount)
	acc.Total = acc.Total.Add(amount)

	l.store.RecordEntry(models.LedgerEntry{
		TxID:   tx.TxID,
		Client: tx.Client,
		Amount: amount,
		Kind:   models.KindDeposit,
	})
	return Applied()
}

func (l *Ledger) withdraw(tx models.Transaction) Outcome {
	if !tx.Amount.Valid || !tx.Amount.Decimal.IsPositive() {
		return Ignored(ReasonNonPositiveAmount)
	}
	amount := tx.Amount.Decimal

	acc, ok := l.store.GetAccount(tx.Client)
	if !ok {
		return Ignored(ReasonAccountNotFound)
	}
	if acc.Locked {
		return Ignored(ReasonAccountLocked)
	}
	if acc.Available.Cmp(amount) < 0 {
		return Ignored(ReasonInsufficientFunds)
	}

	acc.Available = acc.Available.Sub(amount)
	acc.Total = acc.Total.Sub(amount)

	l.store.RecordEntry(models.LedgerEntry{
		TxID:   tx.TxID,
		Client: tx.Client,
		Amount: amount,
		Kind:   models.KindWithdrawal,
	})
	return Applied()
}

// disputeTarget resolves the entry and account a dispute, resolve or chargeback
// refers to. wantDisputed is the dispute flag the entry must currently carry.
func (l *Ledger) disputeTarget(tx models.Transaction, wantDisputed bool) (*models.LedgerEntry, *models.Account, Outcome) {
	entry, ok := l.store.GetEntry(tx.TxID)
	if !ok {
		return nil, nil, Ignored(ReasonEntryNotFound)
	}
	if entry.Client != tx.Client {
		return nil, nil, Ignored(ReasonClientMismatch)
	}
	if entry.Disputed != wantDisputed {
		if entry.Disputed {
			return nil, nil, Ignored(ReasonAlreadyDisputed)
		}
		return nil, nil, Ignored(ReasonNotDisputed)
	}

	acc, ok := l.store.GetAccount(tx.Client)
	if !ok {
		return nil, nil, Ignored(ReasonAccountNotFound)
	}
	if acc.Locked {
		return nil, nil, Ignored(ReasonAccountLocked)
	}
	return entry, acc, Applied()
}

func (l *Ledger) dispute(tx models.Transaction) Outcome {
	entry, acc, outcome := l.disputeTarget(tx, false)
	if !outcome.IsApplied() {
		return outcome
	}

	entry.Disputed = true
	acc.Available = acc.Available.Sub(entry.Amount)
	acc.Held = acc.Held.Add(entry.Amount)
	return Applied()
}

func (l *Ledger) resolve(tx models.Transaction) Outcome {
	entry, acc, outcome := l.disputeTarget(tx, true)
	if !outcome.IsApplied() {
		return outcome
	}

	entry.Disputed = false
	acc.Available = acc.Available.Add(entry.Amount)
	acc.Held = acc.Held.Sub(entry.Amount)
	return Applied()
}

// chargeback reverses a disputed entry and freezes the account.
// The entry keeps its Disputed flag; the locked account prevents any further use of it.
func (l *Ledger) chargeback(tx models.Transaction) Outcome {
	entry, acc, outcome := l.disputeTarget(tx, true)
	if !outcome.IsApplied() {
		return outcome
	}

	acc.Held = acc.Held.Sub(entry.Amount)
	acc.Total = acc.Total.Sub(entry.Amount)
	acc.Locked = true
	return Applied()
}
