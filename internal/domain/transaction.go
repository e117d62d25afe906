// Package domain holds the core types shared by every stage of the fraud
// analysis pipeline: the transaction record, the signal payloads emitted by
// detectors, and the report shapes consumed by callers.
package domain

import "time"

// Transaction is an immutable, validated transfer between two accounts.
// Validation (non-empty ids, positive amount, canonical timestamp format)
// happens upstream in the CSV ingestor; the engine assumes every Transaction
// it receives already satisfies those invariants.
type Transaction struct {
	ID         string    `json:"transaction_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Amount     float64   `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// IsSelfLoop reports whether the transaction's sender and receiver are the
// same account. Self-loops are retained verbatim in the graph. The
// round-trip detector and the community projection skip self-loop edges on
// their own; the other detectors count them like any other edge.
func (t Transaction) IsSelfLoop() bool {
	return t.SenderID == t.ReceiverID
}
