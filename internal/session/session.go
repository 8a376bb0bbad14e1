// Package session holds the wallet session needed to submit transactions and
// the precondition check that guards every mutating call.
package session

import (
	"fmt"
	"strings"

	"chaintask/internal/contract"
)

// Session is the active account, its signer and the live connection.
// Any field may be absent.
type Session struct {
	Account string
	Signer  contract.Signer
	Conn    contract.Connection
}

// NamedSigner signs through a named signing source (a wallet extension or
// gateway-held keyring).
type NamedSigner string

// Source implements contract.Signer.
func (s NamedSigner) Source() string { return string(s) }

// PreconditionError is returned when a mutating call is refused because part
// of the session or the contract is missing. No network call was made.
type PreconditionError struct {
	Missing []string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("wallet not connected: missing %s", strings.Join(e.Missing, ", "))
}

// Check verifies that an account, a resolved contract, a signer and a
// connection are all present.
func Check(s Session, h *contract.Handle) error {
	var missing []string
	if s.Account == "" {
		missing = append(missing, "account")
	}
	if h == nil {
		missing = append(missing, "contract")
	}
	if s.Signer == nil {
		missing = append(missing, "signer")
	}
	if s.Conn == nil {
		missing = append(missing, "connection")
	}
	if len(missing) > 0 {
		return &PreconditionError{Missing: missing}
	}
	return nil
}
