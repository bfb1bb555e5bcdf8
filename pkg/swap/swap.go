package swap

import "fmt"

// Action is an operation performed against the escrow contract.
type Action string

var (
	ActionInitiate Action = "initiate"
	ActionClaim    Action = "claim"
	ActionRefund   Action = "refund"
)

// Asset is the side of the swap a party wants to receive. The wire values
// match the intention events published by existing clients.
type Asset string

const (
	// AssetNative is the native coin of the escrow chain.
	AssetNative Asset = "BNB"

	// AssetLightning is sats paid over the payment network.
	AssetLightning Asset = "TAPROOT_BNB"
)

func (a Asset) Valid() bool {
	return a == AssetNative || a == AssetLightning
}

// Participant identifies one of the two parties of an intention.
type Participant uint8

const (
	Poster Participant = iota
	Accepter
)

func (p Participant) String() string {
	if p == Poster {
		return "poster"
	}
	return "accepter"
}

// Role is a duty within a swap. The locker also publishes the invoice, the
// claimer is always the locker's counterparty.
type Role uint8

const (
	RoleLocker Role = iota
	RoleInvoicePublisher
	RoleClaimer
)

func (r Role) String() string {
	switch r {
	case RoleLocker:
		return "locker"
	case RoleInvoicePublisher:
		return "invoice-publisher"
	default:
		return "claimer"
	}
}

// ParticipantFor returns which participant holds the given role for an
// intention wanting the given asset. It is total over both enums: a party
// wanting the native coin receives the locked funds, so its counterparty
// locks and issues the invoice.
func ParticipantFor(wanted Asset, role Role) Participant {
	locker := Poster
	if wanted == AssetNative {
		locker = Accepter
	}
	switch role {
	case RoleLocker, RoleInvoicePublisher:
		return locker
	default:
		if locker == Poster {
			return Accepter
		}
		return Poster
	}
}

// HasRole reports whether participant p holds the given role.
func HasRole(wanted Asset, p Participant, role Role) bool {
	return ParticipantFor(wanted, role) == p
}

// State is the lifecycle position of a single swap. It is always re-derived
// from the escrow contract and the intention ledger, never trusted from a
// local cache.
type State uint8

const (
	StateCreated State = iota
	StateAccepted
	StateInvoiceReady
	StateLocked
	StateSettled
	StateRefunded
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateAccepted:
		return "accepted"
	case StateInvoiceReady:
		return "invoice_ready"
	case StateLocked:
		return "locked"
	case StateSettled:
		return "settled"
	case StateRefunded:
		return "refunded"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateSettled || s == StateRefunded
}
