package mapping

import (
	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
	"github.com/brewpoints/cafe_ledger_app/internal/models"
)

// ToModelTransaction converts a domain transaction to its storage shape.
func ToModelTransaction(d domain.LedgerTransaction) models.LedgerTransaction {
	return models.LedgerTransaction{
		TransactionID:  d.TransactionID,
		Type:           models.TransactionType(d.Type),
		Note:           d.Note,
		IdempotencyKey: d.IdempotencyKey,
		ReversalOf:     d.ReversalOf,
		ActorID:        d.ActorID,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainTransaction converts a storage transaction to its domain shape.
func ToDomainTransaction(m models.LedgerTransaction) domain.LedgerTransaction {
	return domain.LedgerTransaction{
		TransactionID:  m.TransactionID,
		Type:           domain.TransactionType(m.Type),
		Note:           m.Note,
		IdempotencyKey: m.IdempotencyKey,
		ReversalOf:     m.ReversalOf,
		ActorID:        m.ActorID,
		CreatedAt:      m.CreatedAt,
	}
}

// ToModelEntry converts a domain ledger entry to its storage shape.
func ToModelEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		AccountCode:   string(d.AccountCode),
		UserID:        d.UserID,
		Side:          models.EntrySide(d.Side),
		AmountMinor:   d.AmountMinor,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainEntry converts a storage ledger entry to its domain shape.
func ToDomainEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		AccountCode:   domain.AccountCode(m.AccountCode),
		UserID:        m.UserID,
		Side:          domain.EntrySide(m.Side),
		AmountMinor:   m.AmountMinor,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainEntrySlice converts a slice of storage entries to domain entries.
func ToDomainEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}

// ToDomainBalance converts a storage balance row to its domain shape.
func ToDomainBalance(m models.AccountBalance) domain.AccountBalance {
	return domain.AccountBalance{
		AccountCode:  domain.AccountCode(m.AccountCode),
		UserID:       m.UserID,
		BalanceMinor: m.BalanceMinor,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToDomainIdempotencyRecord converts a storage idempotency row to its domain shape.
func ToDomainIdempotencyRecord(m models.IdempotencyRecord) domain.IdempotencyRecord {
	return domain.IdempotencyRecord{
		Key:           m.Key,
		RequestHash:   m.RequestHash,
		TransactionID: m.TransactionID,
		FirstSeenAt:   m.FirstSeenAt,
	}
}

// ToDomainTrialBalanceSnapshot converts a storage snapshot to its domain shape.
func ToDomainTrialBalanceSnapshot(m models.TrialBalanceSnapshot) domain.TrialBalanceSnapshot {
	return domain.TrialBalanceSnapshot{
		AsOfDate:       m.AsOfDate,
		SumDebitMinor:  m.SumDebitMinor,
		SumCreditMinor: m.SumCreditMinor,
		DeltaMinor:     m.DeltaMinor,
		Status:         domain.TrialBalanceStatus(m.Status),
		RanAt:          m.RanAt,
	}
}
