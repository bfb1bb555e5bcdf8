package intent

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip19"
)

// IdentityMessage is signed by the party's wallet key to derive a
// deterministic nostr identity, so the same wallet always negotiates under
// the same pubkey.
const IdentityMessage = "Sign this message to derive your Nostr identity for LNC Atomic Swaps."

// Identity is a nostr keypair used to sign negotiation events.
type Identity struct {
	secretKey string
	PublicKey string
}

// NewIdentity wraps an existing hex-encoded nostr secret key.
func NewIdentity(secretKey string) (Identity, error) {
	pub, err := nostr.GetPublicKey(secretKey)
	if err != nil {
		return Identity{}, fmt.Errorf("invalid nostr secret key: %w", err)
	}
	return Identity{secretKey: secretKey, PublicKey: pub}, nil
}

// RandomIdentity generates a throwaway identity, used by tests and by
// parties who do not care about a stable negotiation key.
func RandomIdentity() (Identity, error) {
	return NewIdentity(nostr.GeneratePrivateKey())
}

// DeriveIdentity hashes a wallet signature over IdentityMessage into a nostr
// secret key.
func DeriveIdentity(signature []byte) (Identity, error) {
	if len(signature) == 0 {
		return Identity{}, fmt.Errorf("empty signature")
	}
	seed := sha256.Sum256(signature)
	return NewIdentity(hex.EncodeToString(seed[:]))
}

// Npub returns the bech32 form of the public key.
func (id Identity) Npub() (string, error) {
	return nip19.EncodePublicKey(id.PublicKey)
}

// Sign signs ev in place with the identity's secret key.
func (id Identity) Sign(ev *nostr.Event) error {
	return ev.Sign(id.secretKey)
}
