package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/brewpoints/cafe_ledger_app/internal/apperrors"
	"github.com/brewpoints/cafe_ledger_app/internal/core/domain"
	portsrepo "github.com/brewpoints/cafe_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/brewpoints/cafe_ledger_app/internal/core/ports/services"
	"github.com/brewpoints/cafe_ledger_app/internal/dto"
	"github.com/brewpoints/cafe_ledger_app/internal/middleware"
	"github.com/brewpoints/cafe_ledger_app/internal/utils"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type ledgerService struct {
	ledgerRepo      portsrepo.LedgerRepository
	balanceRepo     portsrepo.BalanceRepository
	idempotencyRepo portsrepo.IdempotencyRepository
}

// NewLedgerService creates the money-moving operation service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, balanceRepo portsrepo.BalanceRepository, idempotencyRepo portsrepo.IdempotencyRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:      ledgerRepo,
		balanceRepo:     balanceRepo,
		idempotencyRepo: idempotencyRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Topup funds a customer wallet from cash taken at the counter. Debits the
// cash asset account and credits the customer's liability account.
func (s *ledgerService) Topup(ctx context.Context, req dto.TopupRequest, idempotencyKey string, actorID string) (*domain.LedgerTransaction, error) {
	requestHash := utils.RequestHash(string(domain.Topup), req.UserID, utils.AmountField(req.AmountMinor), req.Note)

	if replayed, err := s.resolveReplay(ctx, idempotencyKey, requestHash); replayed != nil || err != nil {
		return replayed, err
	}

	now := time.Now().UTC()
	txn := domain.LedgerTransaction{
		TransactionID:  uuid.NewString(),
		Type:           domain.Topup,
		Note:           req.Note,
		IdempotencyKey: &idempotencyKey,
		ActorID:        actorID,
		CreatedAt:      now,
	}
	entries := buildEntryPair(txn.TransactionID, req.AmountMinor, now,
		entryLeg{account: domain.AccountCash, userID: domain.GlobalUserID, side: domain.Debit},
		entryLeg{account: domain.AccountCustomerFunds, userID: req.UserID, side: domain.Credit},
	)

	return s.commit(ctx, txn, entries, idempotencyKey, requestHash)
}

// Charge spends from a customer wallet into revenue. Fails with
// ErrInsufficientFunds rather than ever driving the liability negative.
func (s *ledgerService) Charge(ctx context.Context, req dto.ChargeRequest, idempotencyKey string, actorID string) (*domain.LedgerTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	requestHash := utils.RequestHash(string(domain.Charge), req.UserID, utils.AmountField(req.AmountMinor), req.Note)

	if replayed, err := s.resolveReplay(ctx, idempotencyKey, requestHash); replayed != nil || err != nil {
		return replayed, err
	}

	// Friendly pre-check. The repository re-validates under row locks, so a
	// concurrent spend between here and commit still cannot overdraw.
	balance, err := s.balanceRepo.FindBalance(ctx, domain.BalanceKey{AccountCode: domain.AccountCustomerFunds, UserID: req.UserID})
	if err != nil {
		logger.Error("Failed to read customer balance for charge", slog.String("user_id", req.UserID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read customer balance: %w", err)
	}
	available := int64(0)
	if balance != nil {
		available = balance.BalanceMinor
	}
	if available < req.AmountMinor {
		return nil, fmt.Errorf("%w: balance %d is less than charge %d for user %s",
			apperrors.ErrInsufficientFunds, available, req.AmountMinor, req.UserID)
	}

	now := time.Now().UTC()
	txn := domain.LedgerTransaction{
		TransactionID:  uuid.NewString(),
		Type:           domain.Charge,
		Note:           req.Note,
		IdempotencyKey: &idempotencyKey,
		ActorID:        actorID,
		CreatedAt:      now,
	}
	entries := buildEntryPair(txn.TransactionID, req.AmountMinor, now,
		entryLeg{account: domain.AccountCustomerFunds, userID: req.UserID, side: domain.Debit},
		entryLeg{account: domain.AccountRevenue, userID: domain.GlobalUserID, side: domain.Credit},
	)

	return s.commit(ctx, txn, entries, idempotencyKey, requestHash)
}

// Bonus grants promotional funds to a customer wallet at the cafe's expense.
func (s *ledgerService) Bonus(ctx context.Context, req dto.BonusRequest, idempotencyKey string, actorID string) (*domain.LedgerTransaction, error) {
	requestHash := utils.RequestHash(string(domain.Bonus), req.UserID, utils.AmountField(req.AmountMinor), req.Reason)

	if replayed, err := s.resolveReplay(ctx, idempotencyKey, requestHash); replayed != nil || err != nil {
		return replayed, err
	}

	now := time.Now().UTC()
	txn := domain.LedgerTransaction{
		TransactionID:  uuid.NewString(),
		Type:           domain.Bonus,
		Note:           req.Reason,
		IdempotencyKey: &idempotencyKey,
		ActorID:        actorID,
		CreatedAt:      now,
	}
	entries := buildEntryPair(txn.TransactionID, req.AmountMinor, now,
		entryLeg{account: domain.AccountBonusExpense, userID: domain.GlobalUserID, side: domain.Debit},
		entryLeg{account: domain.AccountCustomerFunds, userID: req.UserID, side: domain.Credit},
	)

	return s.commit(ctx, txn, entries, idempotencyKey, requestHash)
}

// Reverse appends a mirror transaction that swaps the sides of the original's
// entry pair. The original row is never touched, and each original can be
// reversed at most once.
func (s *ledgerService) Reverse(ctx context.Context, transactionID string, idempotencyKey string, actorID string) (*domain.LedgerTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	requestHash := utils.RequestHash(string(domain.Reversal), transactionID)

	if replayed, err := s.resolveReplay(ctx, idempotencyKey, requestHash); replayed != nil || err != nil {
		return replayed, err
	}

	original, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if original.Type == domain.Reversal {
		return nil, fmt.Errorf("%w: %s is itself a reversal; reverse the original instead",
			apperrors.ErrReversalForbiddenType, transactionID)
	}

	existing, err := s.ledgerRepo.FindReversalOf(ctx, transactionID)
	if err != nil {
		logger.Error("Failed to check for existing reversal", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check for existing reversal: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: transaction %s was reversed by %s",
			apperrors.ErrReversalExists, transactionID, existing.TransactionID)
	}

	originalEntries, err := s.ledgerRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		logger.Error("Failed to load entries for reversal", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load entries for reversal: %w", err)
	}
	if err := domain.ValidateEntryPair(originalEntries); err != nil {
		logger.Error("Stored transaction fails the pair invariant", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	reversal := domain.LedgerTransaction{
		TransactionID:  uuid.NewString(),
		Type:           domain.Reversal,
		Note:           fmt.Sprintf("reversal of %s", transactionID),
		IdempotencyKey: &idempotencyKey,
		ReversalOf:     &transactionID,
		ActorID:        actorID,
		CreatedAt:      now,
	}
	entries := make([]domain.LedgerEntry, 0, len(originalEntries))
	for _, e := range originalEntries {
		entries = append(entries, domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			TransactionID: reversal.TransactionID,
			AccountCode:   e.AccountCode,
			UserID:        e.UserID,
			Side:          oppositeSide(e.Side),
			AmountMinor:   e.AmountMinor,
			CreatedAt:     now,
		})
	}

	return s.commit(ctx, reversal, entries, idempotencyKey, requestHash)
}

// GetTransaction returns one transaction with its entry pair, re-checking the
// pair invariant on the way out so corrupted storage surfaces loudly.
func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.LedgerTransaction, []domain.LedgerEntry, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.ledgerRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load entries: %w", err)
	}
	if err := domain.ValidateEntryPair(entries); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Stored transaction fails the pair invariant",
			slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, nil, err
	}
	return txn, entries, nil
}

// ListTransactions returns a newest-first page of the log, optionally filtered
// to events touching one customer's account.
func (s *ledgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	txns, nextToken, err := s.ledgerRepo.ListTransactions(ctx, params.UserID, limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(txns)),
		NextToken:    nextToken,
		HasMore:      nextToken != nil,
	}
	for i := range txns {
		resp.Transactions = append(resp.Transactions, dto.ToTransactionResponse(&txns[i], nil, utils.FormatMinorUnits))
	}
	return resp, nil
}

// resolveReplay implements the idempotency fast path. A known key with a
// matching hash returns the stored transaction; a known key with a different
// hash is client misuse. An unseen key returns (nil, nil) and the authoritative
// claim happens inside the repository's atomic unit.
func (s *ledgerService) resolveReplay(ctx context.Context, idempotencyKey string, requestHash string) (*domain.LedgerTransaction, error) {
	record, err := s.idempotencyRepo.FindByKey(ctx, idempotencyKey)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to look up idempotency key", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	if record == nil {
		return nil, nil
	}
	if record.RequestHash != requestHash {
		return nil, fmt.Errorf("%w: idempotency key %q was already used for a different request",
			apperrors.ErrValidation, idempotencyKey)
	}
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, record.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load replayed transaction %s: %w", record.TransactionID, err)
	}
	return txn, nil
}

// commit validates the pair, derives balance deltas, and hands the repository
// one atomic unit. A duplicate-key race from a concurrent retry of the same
// request resolves to the winner's committed transaction.
func (s *ledgerService) commit(ctx context.Context, txn domain.LedgerTransaction, entries []domain.LedgerEntry, idempotencyKey string, requestHash string) (*domain.LedgerTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := domain.ValidateEntryPair(entries); err != nil {
		logger.Error("Refusing to commit unbalanced pair", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, err
	}
	deltas, err := domain.BalanceDeltas(entries)
	if err != nil {
		return nil, err
	}
	record := domain.IdempotencyRecord{
		Key:           idempotencyKey,
		RequestHash:   requestHash,
		TransactionID: txn.TransactionID,
		FirstSeenAt:   txn.CreatedAt,
	}

	if err := s.ledgerRepo.SaveTransaction(ctx, txn, entries, deltas, record); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.resolveReplay(ctx, idempotencyKey, requestHash)
		}
		logger.Error("Failed to commit transaction",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("type", string(txn.Type)),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction committed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)))
	return &txn, nil
}

type entryLeg struct {
	account domain.AccountCode
	userID  string
	side    domain.EntrySide
}

func buildEntryPair(transactionID string, amountMinor int64, at time.Time, legs ...entryLeg) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, 0, len(legs))
	for _, leg := range legs {
		entries = append(entries, domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountCode:   leg.account,
			UserID:        leg.userID,
			Side:          leg.side,
			AmountMinor:   amountMinor,
			CreatedAt:     at,
		})
	}
	return entries
}

func oppositeSide(side domain.EntrySide) domain.EntrySide {
	if side == domain.Debit {
		return domain.Credit
	}
	return domain.Debit
}
