package ledger

// Status says whether an event changed the ledger.
type Status string

const (
	StatusApplied Status = "applied"
	StatusIgnored Status = "ignored"
)

// Reason explains why an event was dropped. Ignored events never abort a run.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonNonPositiveAmount Reason = "non_positive_amount"
	ReasonAccountNotFound   Reason = "account_not_found"
	ReasonAccountLocked     Reason = "account_locked"
	ReasonInsufficientFunds Reason = "insufficient_funds"
	ReasonEntryNotFound     Reason = "entry_not_found"
	ReasonClientMismatch    Reason = "client_mismatch"
	ReasonAlreadyDisputed   Reason = "already_disputed"
	ReasonNotDisputed       Reason = "not_disputed"
	ReasonUnknownKind       Reason = "unknown_kind"
)

// Outcome is the result of applying a single event.
type Outcome struct {
	Status Status
	Reason Reason
}

// Applied reports that the event changed the ledger.
func Applied() Outcome {
	return Outcome{Status: StatusApplied}
}

// Ignored reports that the event was dropped for reason and left the ledger untouched.
func Ignored(reason Reason) Outcome {
	return Outcome{Status: StatusIgnored, Reason: reason}
}

// IsApplied is true when the event changed the ledger.
func (o Outcome) IsApplied() bool {
	return o.Status == StatusApplied
}

func (o Outcome) String() string {
	if o.IsApplied() {
		return string(StatusApplied)
	}
	return string(StatusIgnored) + "(" + string(o.Reason) + ")"
}
