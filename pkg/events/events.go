// Package events defines the events emitted by the posting engine and the
// publisher contract they travel through. Downstream collaborators (budget
// schedulers, dashboards, document renderers) consume these instead of
// polling the journal.
package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Publisher delivers events to an external broker. Implementations must be
// safe for concurrent use.
type Publisher interface {
	Publish(topic string, event any) error
}

// TopicEntryPosted is the default topic for EntryPosted events.
const TopicEntryPosted = "ledger.entry_posted"

// PostedLine is one leg of a posted entry as carried on the event.
type PostedLine struct {
	AccountID   string          `json:"account_id"`
	AccountCode string          `json:"account_code,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// EntryPosted is emitted after a posting transaction commits. Delivery is
// best effort: a publish failure is logged by the posting engine and never
// fails the posting itself.
type EntryPosted struct {
	TenantID    string       `json:"tenant_id"`
	EntryID     string       `json:"entry_id"`
	EntryNumber string       `json:"entry_number"`
	EntryDate   string       `json:"entry_date"`
	Description string       `json:"description"`
	Lines       []PostedLine `json:"lines"`
	OccurredAt  time.Time    `json:"occurred_at"`
}
