// =============================
// File: internal/pumpfun/notification.go
// =============================
package pumpfun

import "encoding/json"

// TransactionNotification is the JSON payload consumed from the upstream
// queue: one confirmed transaction in the enhanced websocket shape, with the
// message already parsed into per-program instructions.
type TransactionNotification struct {
	Slot        uint64              `json:"slot"`
	Signature   string              `json:"signature"`
	Transaction TransactionWithMeta `json:"transaction"`
}

// TransactionWithMeta pairs the encoded transaction with its execution meta.
type TransactionWithMeta struct {
	Meta        *TransactionMeta   `json:"meta"`
	Transaction EncodedTransaction `json:"transaction"`
}

// TransactionMeta holds the execution status. Err is null for a successful
// transaction and an arbitrary JSON value for a failed one.
type TransactionMeta struct {
	Err json.RawMessage `json:"err"`
}

// StatusOK reports whether the transaction executed successfully. Absent
// meta counts as failure.
func (m *TransactionMeta) StatusOK() bool {
	if m == nil {
		return false
	}
	return len(m.Err) == 0 || string(m.Err) == "null"
}

// EncodedTransaction wraps the parsed message.
type EncodedTransaction struct {
	Message TransactionMessage `json:"message"`
}

// TransactionMessage lists the program instructions in execution order.
type TransactionMessage struct {
	Instructions []ProgramInstruction `json:"instructions"`
}

// ProgramInstruction is one partially decoded instruction: the program it
// targets, the accounts it references positionally, and base58 binary data.
type ProgramInstruction struct {
	ProgramID string   `json:"programId"`
	Accounts  []string `json:"accounts"`
	Data      string   `json:"data"`
}
