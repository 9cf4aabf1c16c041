package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brewpoints/cafe_ledger_app/internal/apperrors"
	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
	portsrepo "github.com/brewpoints/cafe_ledger_app/internal/core/ports/repositories"
	"github.com/brewpoints/cafe_ledger_app/internal/middleware"
	"github.com/brewpoints/cafe_ledger_app/internal/models"
	"github.com/brewpoints/cafe_ledger_app/internal/utils/mapping"
	"github.com/brewpoints/cafe_ledger_app/internal/utils/pagination"
)

// Constraint names declared in the migrations. SaveTransaction translates
// violations of these into domain errors so concurrent writers that slip past
// the application pre-checks still fail cleanly.
const (
	constraintReversalUnique   = "uq_ledger_transactions_reversal_of"
	constraintBalanceNonNeg    = "ck_account_balances_non_negative"
	constraintIdempotencyKeyPK = "idempotency_keys_pkey"
)

const transactionColumns = "transaction_id, transaction_type, note, idempotency_key, reversal_of, actor_id, created_at"

type PgxLedgerRepository struct {
	*BaseRepository
}

// NewPgxLedgerRepository creates the transaction log repository.
func NewPgxLedgerRepository(base *BaseRepository) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: base}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// SaveTransaction commits one ledger event atomically: the transaction row,
// its entry pair, the balance updates against locked rows, and the idempotency
// record. Everything or nothing; any constraint violation rolls the unit back.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.LedgerTransaction, entries []domain.LedgerEntry, deltas map[domain.BalanceKey]int64, record domain.IdempotencyRecord) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Error("Failed to rollback transaction", slog.String("error", rbErr.Error()))
		}
	}()

	if err := r.lockAndCheckBalances(ctx, tx, deltas); err != nil {
		return err
	}

	model := mapping.ToModelTransaction(txn)
	insertTxnSQL := fmt.Sprintf("INSERT INTO ledger_transactions (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)", transactionColumns)
	if _, err := tx.Exec(ctx, insertTxnSQL,
		model.TransactionID, string(model.Type), model.Note, model.IdempotencyKey, model.ReversalOf, model.ActorID, model.CreatedAt); err != nil {
		if pgErr, ok := pgErrorDetail(err); ok && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraintReversalUnique {
			return fmt.Errorf("%w: a reversal of %s was committed concurrently",
				apperrors.ErrReversalExists, derefOr(model.ReversalOf, ""))
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	for _, entry := range entries {
		e := mapping.ToModelEntry(entry)
		if _, err := tx.Exec(ctx,
			"INSERT INTO ledger_entries (entry_id, transaction_id, account_code, user_id, side, amount_minor, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
			e.EntryID, e.TransactionID, e.AccountCode, e.UserID, string(e.Side), e.AmountMinor, e.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", e.EntryID, err)
		}
	}

	if err := r.applyBalanceDeltas(ctx, tx, deltas, txn.CreatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		"INSERT INTO idempotency_keys (idempotency_key, request_hash, transaction_id, first_seen_at) VALUES ($1, $2, $3, $4)",
		record.Key, record.RequestHash, record.TransactionID, record.FirstSeenAt); err != nil {
		if pgErr, ok := pgErrorDetail(err); ok && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: idempotency key %q was claimed concurrently", apperrors.ErrDuplicate, record.Key)
		}
		return fmt.Errorf("failed to insert idempotency record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// lockAndCheckBalances makes sure every touched balance row exists, locks the
// rows in a deterministic order, and rejects deltas that would drive a
// customer liability negative.
func (r *PgxLedgerRepository) lockAndCheckBalances(ctx context.Context, tx pgx.Tx, deltas map[domain.BalanceKey]int64) error {
	for _, key := range sortedBalanceKeys(deltas) {
		if _, err := tx.Exec(ctx,
			"INSERT INTO account_balances (account_code, user_id, balance_minor, updated_at) VALUES ($1, $2, 0, $3) ON CONFLICT (account_code, user_id) DO NOTHING",
			string(key.AccountCode), key.UserID, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to ensure balance row for %s/%s: %w", key.AccountCode, key.UserID, err)
		}

		var current int64
		err := tx.QueryRow(ctx,
			"SELECT balance_minor FROM account_balances WHERE account_code = $1 AND user_id = $2 FOR UPDATE",
			string(key.AccountCode), key.UserID).Scan(&current)
		if err != nil {
			return fmt.Errorf("failed to lock balance row for %s/%s: %w", key.AccountCode, key.UserID, err)
		}

		if domain.IsUserScoped(key.AccountCode) && current+deltas[key] < 0 {
			return fmt.Errorf("%w: balance %d cannot absorb delta %d for user %s",
				apperrors.ErrInsufficientFunds, current, deltas[key], key.UserID)
		}
	}
	return nil
}

func (r *PgxLedgerRepository) applyBalanceDeltas(ctx context.Context, tx pgx.Tx, deltas map[domain.BalanceKey]int64, at time.Time) error {
	for _, key := range sortedBalanceKeys(deltas) {
		delta := deltas[key]
		if _, err := tx.Exec(ctx,
			"UPDATE account_balances SET balance_minor = balance_minor + $1, updated_at = $2 WHERE account_code = $3 AND user_id = $4",
			delta, at, string(key.AccountCode), key.UserID); err != nil {
			if pgErr, ok := pgErrorDetail(err); ok && pgErr.Code == pgCheckViolation && pgErr.ConstraintName == constraintBalanceNonNeg {
				return fmt.Errorf("%w: delta %d would drive user %s negative",
					apperrors.ErrInsufficientFunds, delta, key.UserID)
			}
			return fmt.Errorf("failed to apply balance delta for %s/%s: %w", key.AccountCode, key.UserID, err)
		}
	}
	return nil
}

// FindTransactionByID returns one transaction or ErrTxNotFound.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error) {
	query := fmt.Sprintf("SELECT %s FROM ledger_transactions WHERE transaction_id = $1", transactionColumns)
	model, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrTxNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(*model)
	return &txn, nil
}

// FindEntriesByTransactionID returns the entry pair of one transaction.
func (r *PgxLedgerRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT entry_id, transaction_id, account_code, user_id, side, amount_minor, created_at FROM ledger_entries WHERE transaction_id = $1 ORDER BY side",
		transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for %s: %w", transactionID, err)
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(&e.EntryID, &e.TransactionID, &e.AccountCode, &e.UserID, &e.Side, &e.AmountMinor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return mapping.ToDomainEntrySlice(entries), nil
}

// FindReversalOf returns the reversal referencing the given original, or nil.
func (r *PgxLedgerRepository) FindReversalOf(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error) {
	query := fmt.Sprintf("SELECT %s FROM ledger_transactions WHERE reversal_of = $1", transactionColumns)
	model, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find reversal of %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(*model)
	return &txn, nil
}

// ListTransactions returns a newest-first page. The cursor encodes the last
// row's position; fetching limit+1 rows detects whether a next page exists.
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, userID *string, limit int, nextToken *string) ([]domain.LedgerTransaction, *string, error) {
	var sb strings.Builder
	args := make([]any, 0, 4)

	sb.WriteString("SELECT t.transaction_id, t.transaction_type, t.note, t.idempotency_key, t.reversal_of, t.actor_id, t.created_at FROM ledger_transactions t")

	var conditions []string
	if userID != nil && *userID != "" {
		args = append(args, *userID)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM ledger_entries e WHERE e.transaction_id = t.transaction_id AND e.user_id = $%d)", len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, cursorTime, cursorID)
		conditions = append(conditions, fmt.Sprintf(
			"(t.created_at, t.transaction_id) < ($%d, $%d)", len(args)-1, len(args)))
	}
	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	args = append(args, limit+1)
	sb.WriteString(fmt.Sprintf(" ORDER BY t.created_at DESC, t.transaction_id DESC LIMIT $%d", len(args)))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var page []models.LedgerTransaction
	for rows.Next() {
		var m models.LedgerTransaction
		var txnType string
		if err := rows.Scan(&m.TransactionID, &txnType, &m.Note, &m.IdempotencyKey, &m.ReversalOf, &m.ActorID, &m.CreatedAt); err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		m.Type = models.TransactionType(txnType)
		page = append(page, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	var token *string
	if len(page) > limit {
		page = page[:limit]
		last := page[len(page)-1]
		encoded := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		token = &encoded
	}

	txns := make([]domain.LedgerTransaction, len(page))
	for i, m := range page {
		txns[i] = mapping.ToDomainTransaction(m)
	}
	return txns, token, nil
}

func scanTransaction(row pgx.Row) (*models.LedgerTransaction, error) {
	var m models.LedgerTransaction
	var txnType string
	if err := row.Scan(&m.TransactionID, &txnType, &m.Note, &m.IdempotencyKey, &m.ReversalOf, &m.ActorID, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Type = models.TransactionType(txnType)
	return &m, nil
}

// sortedBalanceKeys fixes the row touch order. Deterministic lock order
// prevents deadlocks between concurrent writers.
func sortedBalanceKeys(deltas map[domain.BalanceKey]int64) []domain.BalanceKey {
	keys := make([]domain.BalanceKey, 0, len(deltas))
	for key := range deltas {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].AccountCode != keys[j].AccountCode {
			return keys[i].AccountCode < keys[j].AccountCode
		}
		return keys[i].UserID < keys[j].UserID
	})
	return keys
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
