package domain

import "time"

// AuditLog records who posted what, for attribution and debugging.
type AuditLog struct {
	CreatedAt    time.Time
	ID           string
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	Status       string
	ErrorMessage string
}

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	AuditActionPostSale     AuditAction = "ledger.post_sale"
	AuditActionPostPurchase AuditAction = "ledger.post_purchase"
	AuditActionPostPayment  AuditAction = "ledger.post_payment"
	AuditActionPostJournal  AuditAction = "ledger.post_journal"
	AuditActionAllocateSeq  AuditAction = "sequence.allocate"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)
