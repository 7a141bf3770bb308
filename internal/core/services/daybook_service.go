package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dairyworks/farm_ledger/internal/core/domain"
	portsrepo "github.com/dairyworks/farm_ledger/internal/core/ports/repositories"
	portssvc "github.com/dairyworks/farm_ledger/internal/core/ports/services"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/dairyworks/farm_ledger/internal/utils/accounting"
	"github.com/dairyworks/farm_ledger/internal/utils/daterange"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type dayBookService struct {
	BaseService
	uow portsrepo.UnitOfWork
}

// NewDayBookService creates the day book report and voucher service.
func NewDayBookService(uow portsrepo.UnitOfWork, opts ...ServiceOption) portssvc.DayBookSvcFacade {
	return &dayBookService{
		BaseService: newBaseService(opts),
		uow:         uow,
	}
}

var _ portssvc.DayBookSvcFacade = (*dayBookService)(nil)

// GetDayBookReport returns one voucher row per transaction dated inside r.
func (s *dayBookService) GetDayBookReport(ctx context.Context, r domain.DateRange) ([]domain.DayBookRow, error) {
	txns, err := s.uow.Transactions().ListTransactionsInRange(ctx, r)
	if err != nil {
		s.LogError(ctx, err, "Failed to list day book transactions")
		return nil, err
	}
	rows, err := s.rows(ctx, txns)
	if err != nil {
		s.LogError(ctx, err, "Failed to build day book rows")
		return nil, err
	}
	return rows, nil
}

// GetDayBook returns the vouchers of a single day with the cash in hand before and after it.
func (s *dayBookService) GetDayBook(ctx context.Context, date time.Time) (*domain.DayBook, error) {
	day := daterange.Day(date)
	rows, err := s.GetDayBookReport(ctx, day)
	if err != nil {
		return nil, err
	}

	book := &domain.DayBook{
		Date:              day.Start,
		Rows:              rows,
		TotalAmount:       decimal.Zero,
		OpeningCashInHand: decimal.Zero,
		ClosingCashInHand: decimal.Zero,
	}
	for _, row := range rows {
		book.TotalAmount = book.TotalAmount.Add(row.DrAmount)
	}

	cashAccounts, err := s.uow.Accounts().ListAccounts(ctx, domain.AccountFilter{AccountType: domain.CashAccount})
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash accounts")
		return nil, err
	}
	for _, acc := range cashAccounts {
		opening, err := openingBalance(ctx, s.uow, acc, day.Start, accounting.DebitPositive)
		if err != nil {
			return nil, err
		}
		closing, err := openingBalance(ctx, s.uow, acc, day.End.Add(time.Nanosecond), accounting.DebitPositive)
		if err != nil {
			return nil, err
		}
		book.OpeningCashInHand = book.OpeningCashInHand.Add(opening)
		book.ClosingCashInHand = book.ClosingCashInHand.Add(closing)
	}
	return book, nil
}

func (s *dayBookService) rows(ctx context.Context, txns []domain.Transaction) ([]domain.DayBookRow, error) {
	ids := make([]string, 0, len(txns)*2)
	for _, t := range txns {
		ids = append(ids, t.DebitAccountID, t.CreditAccountID)
	}
	accounts, err := s.uow.Accounts().FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	name := func(id string) string {
		if acc, ok := accounts[id]; ok {
			return acc.DisplayName()
		}
		return id
	}

	accounting.SortChronologically(txns)
	rows := make([]domain.DayBookRow, 0, len(txns))
	for _, t := range txns {
		particulars := t.Description
		if particulars == "" {
			particulars = fmt.Sprintf("%s / %s", name(t.DebitAccountID), name(t.CreditAccountID))
		}
		rows = append(rows, domain.DayBookRow{
			TransactionID: t.TransactionID,
			Date:          t.Date,
			Particulars:   particulars,
			VoucherType:   domain.VoucherTypeFor(t.Ref),
			VoucherNumber: domain.VoucherNumber(t.Ref, t.TransactionID),
			DebitLedger:   name(t.DebitAccountID),
			CreditLedger:  name(t.CreditAccountID),
			DrAmount:      t.Amount,
			CrAmount:      t.Amount,
		})
	}
	return rows, nil
}

func (s *dayBookService) CreateCollection(ctx context.Context, req dto.CreateCollectionRequest, userID string) (*domain.Collection, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	date, err := s.documentDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	var created domain.Collection
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		p := newPosting(tx, userID, now)
		customer, err := p.account(ctx, "customer", req.CustomerAccountID, domain.CustomerAccount)
		if err != nil {
			return err
		}
		payment, err := p.account(ctx, "payment", req.PaymentAccountID, moneyAccountTypes...)
		if err != nil {
			return err
		}
		number, err := tx.Sequences().NextNumber(ctx, domain.CollectionSequence)
		if err != nil {
			return err
		}
		collection := domain.Collection{
			CollectionID:      uuid.NewString(),
			CollectionNumber:  number,
			CustomerAccountID: customer.AccountID,
			PaymentAccountID:  payment.AccountID,
			Amount:            domain.RoundMoney(req.Amount),
			Date:              date,
			Notes:             req.Notes,
			AuditFields:       domain.NewAuditFields(userID, now),
		}
		ref := collection.Ref()
		description := firstNonEmpty(req.Notes, "Collection "+ref.Number)
		if _, err := p.add(date, payment, customer, req.Amount, description, map[string]string{
			payment.AccountID:  fmt.Sprintf("Collection %s from %s", ref.Number, customer.DisplayName()),
			customer.AccountID: fmt.Sprintf("Collection %s via %s", ref.Number, payment.DisplayName()),
		}, &ref); err != nil {
			return err
		}
		if err := tx.Vouchers().SaveCollection(ctx, collection); err != nil {
			return err
		}
		if err := p.flush(ctx); err != nil {
			return err
		}
		created = collection
		return nil
	})
	observePosting("create_collection", err)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create collection", slog.String("customer_id", req.CustomerAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Collection created", slog.String("collection_id", created.CollectionID))
	return &created, nil
}

func (s *dayBookService) CreateJournalTransaction(ctx context.Context, req dto.CreateJournalTransactionRequest, userID string) (*domain.Transaction, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	date, err := s.documentDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	var posted domain.Transaction
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		p := newPosting(tx, userID, now)
		debit, err := p.account(ctx, "debit", req.DebitAccountID)
		if err != nil {
			return err
		}
		credit, err := p.account(ctx, "credit", req.CreditAccountID)
		if err != nil {
			return err
		}
		txn, err := p.add(date, debit, credit, req.Amount, req.Description, map[string]string{
			debit.AccountID:  "Journal: " + credit.DisplayName(),
			credit.AccountID: "Journal: " + debit.DisplayName(),
		}, nil)
		if err != nil {
			return err
		}
		if err := p.flush(ctx); err != nil {
			return err
		}
		posted = txn
		return nil
	})
	observePosting("create_journal", err)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create journal transaction",
			slog.String("debit_account_id", req.DebitAccountID),
			slog.String("credit_account_id", req.CreditAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal transaction created", slog.String("transaction_id", posted.TransactionID))
	return &posted, nil
}

func (s *dayBookService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.ExpenseVoucher, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	date, err := s.documentDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	var created domain.ExpenseVoucher
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		p := newPosting(tx, userID, now)
		expenseAcc, err := p.account(ctx, "expense", req.ExpenseAccountID, domain.ExpenseAccount)
		if err != nil {
			return err
		}
		payment, err := p.account(ctx, "payment", req.PaymentAccountID, moneyAccountTypes...)
		if err != nil {
			return err
		}
		number, err := tx.Sequences().NextNumber(ctx, domain.ExpenseSequence)
		if err != nil {
			return err
		}
		expense := domain.ExpenseVoucher{
			ExpenseID:        uuid.NewString(),
			ExpenseNumber:    number,
			ExpenseAccountID: expenseAcc.AccountID,
			PaymentAccountID: payment.AccountID,
			Amount:           domain.RoundMoney(req.Amount),
			Category:         req.Category,
			Date:             date,
			Notes:            req.Notes,
			AuditFields:      domain.NewAuditFields(userID, now),
		}
		ref := expense.Ref()
		description := firstNonEmpty(req.Notes, req.Category, "Expense "+ref.Number)
		if _, err := p.add(date, expenseAcc, payment, req.Amount, description, map[string]string{
			expenseAcc.AccountID: fmt.Sprintf("Expense %s paid via %s", ref.Number, payment.DisplayName()),
			payment.AccountID:    fmt.Sprintf("Expense %s: %s", ref.Number, expenseAcc.DisplayName()),
		}, &ref); err != nil {
			return err
		}
		if err := tx.Vouchers().SaveExpense(ctx, expense); err != nil {
			return err
		}
		if err := p.flush(ctx); err != nil {
			return err
		}
		created = expense
		return nil
	})
	observePosting("create_expense", err)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create expense", slog.String("expense_account_id", req.ExpenseAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense created", slog.String("expense_id", created.ExpenseID))
	return &created, nil
}
