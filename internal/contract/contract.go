// Package contract defines the boundary to the contract-execution service:
// handles to deployed contracts, the connection that queries and transacts
// against them, and the decoder for query results.
// Nothing outside a backend package talks to the network directly.
package contract

import (
	"context"
	"encoding/json"
)

// Handle is a resolved reference to a deployed contract instance.
type Handle struct {
	ID      string
	Network string
	Address string
}

// Same reports whether h and other refer to the same deployed contract.
// Two nil handles are the same; a nil and a non-nil handle are not.
func (h *Handle) Same(other *Handle) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.ID == other.ID && h.Network == other.Network && h.Address == other.Address
}

// RawResult is an undecoded query response.
type RawResult json.RawMessage

// Decoded is a query result decoded against the contract's metadata.
type Decoded struct {
	// Output is the method's return value as JSON.
	Output json.RawMessage

	// IsError is set when the call reverted or could not be decoded.
	IsError bool

	// DecodedOutput is a human readable rendering of the result,
	// the error message when IsError is set.
	DecodedOutput string
}

// Signer is the source that signs transactions for the active account.
type Signer interface {
	Source() string
}

// TxOptions are per-transaction call options. Zero means defaults.
type TxOptions struct {
	GasLimit       uint64 `json:"gasLimit,omitempty"`
	StorageDeposit string `json:"storageDepositLimit,omitempty"`
	Value          string `json:"value,omitempty"`
}

// Tx is a state-mutating contract call.
type Tx struct {
	Account string
	Signer  Signer
	Handle  *Handle
	Method  string
	Options TxOptions
	Args    []any
}

// TxResult describes an included transaction.
type TxResult struct {
	Hash   string
	Status string
}

// Connection is a live connection to the contract-execution service.
type Connection interface {
	// Query performs a read-only call. caller may be empty.
	Query(ctx context.Context, caller string, h *Handle, method string, args ...any) (RawResult, error)

	// Transact submits a signed call and waits for inclusion.
	// A transaction that fails on chain is returned as an error.
	Transact(ctx context.Context, tx Tx) (TxResult, error)
}

// Decoder decodes raw query results for a contract method.
type Decoder interface {
	Decode(raw RawResult, h *Handle, method string) Decoded
}
