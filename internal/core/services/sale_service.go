package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	portsrepo "github.com/dairyworks/farm_ledger/internal/core/ports/repositories"
	portssvc "github.com/dairyworks/farm_ledger/internal/core/ports/services"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/dairyworks/farm_ledger/internal/utils/daterange"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type saleService struct {
	BaseService
	uow              portsrepo.UnitOfWork
	salesAccountName string
}

// NewSaleService creates the sale posting service. names.Sales selects the SALE account
// to credit; the first active SALE account is used when no account has that name.
func NewSaleService(uow portsrepo.UnitOfWork, names AccountNames, opts ...ServiceOption) portssvc.SaleSvcFacade {
	return &saleService{
		BaseService:      newBaseService(opts),
		uow:              uow,
		salesAccountName: names.withDefaults().Sales,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// saleInput is a validated sale request independent of its transport shape.
type saleInput struct {
	customerID       string
	date             time.Time
	lines            []lineInput
	discount         decimal.Decimal
	paid             decimal.Decimal
	paymentAccountID string
	notes            string
}

func toLineInputs(items []dto.LineItemRequest) []lineInput {
	lines := make([]lineInput, len(items))
	for i, it := range items {
		lines[i] = lineInput{
			Ref:      domain.ItemRef{Kind: it.ItemType, ID: it.ItemID},
			Quantity: it.Quantity,
			Rate:     it.Rate,
		}
	}
	return lines
}

func (s *saleService) inputFromRequest(req dto.CreateSaleRequest) (saleInput, error) {
	date, err := s.documentDate(req.Date)
	if err != nil {
		return saleInput{}, err
	}
	return saleInput{
		customerID:       req.CustomerAccountID,
		date:             date,
		lines:            toLineInputs(req.Items),
		discount:         req.Discount,
		paid:             req.PaidAmount,
		paymentAccountID: req.PaymentAccountID,
		notes:            req.Notes,
	}, nil
}

// apply fills sale from in and posts it: the invoice transaction, any immediate payment
// with its advance, and a stock decrement per line. sale must carry its id and number.
func (s *saleService) apply(ctx context.Context, p *posting, sale *domain.Sale, in saleInput) error {
	in.discount = domain.RoundMoney(in.discount)
	in.paid = domain.RoundMoney(in.paid)
	customer, err := p.account(ctx, "customer", in.customerID, domain.CustomerAccount)
	if err != nil {
		return err
	}
	salesAcc, err := p.wellKnownAccount(ctx, domain.SaleAccount, s.salesAccountName)
	if err != nil {
		return err
	}
	items, err := p.priceLines(ctx, in.lines)
	if err != nil {
		return err
	}
	total, err := documentTotal(items, in.discount)
	if err != nil {
		return err
	}
	if in.paid.IsNegative() {
		return fmt.Errorf("%w: paid amount must not be negative", apperrors.ErrValidation)
	}
	var payment domain.Account
	if in.paid.IsPositive() {
		if payment, err = p.account(ctx, "payment", in.paymentAccountID, moneyAccountTypes...); err != nil {
			return err
		}
	}

	sale.CustomerAccountID = customer.AccountID
	sale.Date = in.date
	sale.Items = items
	sale.Discount = in.discount
	sale.GrandTotal = total
	sale.PaidAmount = in.paid
	sale.PaymentAccountID = ""
	if in.paid.IsPositive() {
		sale.PaymentAccountID = payment.AccountID
	}
	sale.Notes = in.notes

	ref := sale.Ref()
	party := customer.DisplayName()
	if _, err := p.add(sale.Date, customer, salesAcc, total, "Sale "+ref.Number, map[string]string{
		customer.AccountID: "Sale invoice " + ref.Number,
		salesAcc.AccountID: fmt.Sprintf("Sale %s to %s", ref.Number, party),
	}, &ref); err != nil {
		return err
	}

	if in.paid.IsPositive() {
		if err := postReceipt(p, sale.Date, customer, payment, in.paid, total, ref); err != nil {
			return err
		}
	}

	for _, it := range items {
		if err := p.moveStock(ctx, it.Item, it.Quantity.Neg(), ref, sale.Date); err != nil {
			return err
		}
	}
	return nil
}

// postReceipt records amount received from customer into payment against ref. Up to
// outstanding settles the invoice; any excess is posted as a separate advance.
func postReceipt(p *posting, date time.Time, customer, payment domain.Account, amount, outstanding decimal.Decimal, ref domain.DocumentRef) error {
	party := customer.DisplayName()
	settled := decimal.Min(amount, outstanding)
	if settled.IsPositive() {
		if _, err := p.add(date, payment, customer, settled, "Payment against "+ref.Number, map[string]string{
			payment.AccountID:  fmt.Sprintf("Payment received from %s against %s", party, ref.Number),
			customer.AccountID: fmt.Sprintf("Payment for %s via %s", ref.Number, payment.DisplayName()),
		}, &ref); err != nil {
			return err
		}
	}
	excess := amount.Sub(settled)
	if excess.IsPositive() {
		if _, err := p.add(date, payment, customer, excess, "Advance with "+ref.Number, map[string]string{
			payment.AccountID:  fmt.Sprintf("Advance received from %s with %s", party, ref.Number),
			customer.AccountID: fmt.Sprintf("Advance paid with %s via %s", ref.Number, payment.DisplayName()),
		}, &ref); err != nil {
			return err
		}
	}
	return nil
}

func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.Sale, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	in, err := s.inputFromRequest(req)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	var created domain.Sale
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		p := newPosting(tx, userID, now)
		sale, err := s.newSale(ctx, tx, userID, now)
		if err != nil {
			return err
		}
		if err := s.apply(ctx, p, &sale, in); err != nil {
			return err
		}
		if err := tx.Sales().SaveSale(ctx, sale); err != nil {
			return err
		}
		if err := p.flush(ctx); err != nil {
			return err
		}
		created = sale
		return nil
	})
	observePosting("create_sale", err)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create sale", slog.String("customer_id", req.CustomerAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Sale created",
		slog.String("sale_id", created.SaleID),
		slog.Int64("sale_number", created.SaleNumber),
		slog.String("grand_total", created.GrandTotal.String()))
	return &created, nil
}

func (s *saleService) newSale(ctx context.Context, tx portsrepo.Store, userID string, now time.Time) (domain.Sale, error) {
	number, err := tx.Sequences().NextNumber(ctx, domain.SaleSequence)
	if err != nil {
		return domain.Sale{}, err
	}
	return domain.Sale{
		SaleID:      uuid.NewString(),
		SaleNumber:  number,
		AuditFields: domain.NewAuditFields(userID, now),
	}, nil
}

func (s *saleService) CreateMultipleSales(ctx context.Context, req dto.CreateMultipleSalesRequest, userID string) ([]domain.Sale, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if len(req.Sales) == 0 {
		return nil, fmt.Errorf("%w: at least one sale is required", apperrors.ErrValidation)
	}
	date, err := s.documentDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	var created []domain.Sale
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		created = make([]domain.Sale, 0, len(req.Sales))
		p := newPosting(tx, userID, now)
		for i, entry := range req.Sales {
			sale, err := s.newSale(ctx, tx, userID, now)
			if err != nil {
				return err
			}
			in := saleInput{
				customerID: entry.CustomerAccountID,
				date:       date,
				lines:      toLineInputs(entry.Items),
				discount:   entry.Discount,
				paid:       decimal.Zero,
				notes:      entry.Notes,
			}
			if err := s.apply(ctx, p, &sale, in); err != nil {
				return fmt.Errorf("sale %d: %w", i+1, err)
			}
			if err := tx.Sales().SaveSale(ctx, sale); err != nil {
				return err
			}
			created = append(created, sale)
		}
		return p.flush(ctx)
	})
	observePosting("create_multiple_sales", err)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create multiple sales", slog.Int("count", len(req.Sales)))
		return nil, err
	}

	s.LogInfo(ctx, "Multiple sales created", slog.Int("count", len(created)), slog.String("date", date.Format(daterange.Layout)))
	return created, nil
}

func (s *saleService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.uow.Sales().FindSaleByID(ctx, saleID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get sale", slog.String("sale_id", saleID))
		return nil, err
	}
	return sale, nil
}

func (s *saleService) ListSalesByDate(ctx context.Context, date string) ([]domain.Sale, error) {
	day, err := daterange.ParseDate(date)
	if err != nil {
		return nil, err
	}
	sales, err := s.uow.Sales().ListSalesByDate(ctx, daterange.Day(day))
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales", slog.String("date", date))
		return nil, err
	}
	return sales, nil
}

func (s *saleService) UpdateSalePayment(ctx context.Context, saleID string, req dto.UpdateSalePaymentRequest, userID string) (*domain.Sale, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	amount := domain.RoundMoney(req.Amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	date, err := s.documentDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	var updated domain.Sale
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		sale, err := tx.Sales().LockSaleByID(ctx, saleID)
		if err != nil {
			return err
		}
		p := newPosting(tx, userID, now)
		customer, err := p.account(ctx, "customer", sale.CustomerAccountID)
		if err != nil {
			return err
		}
		payment, err := p.account(ctx, "payment", req.PaymentAccountID, moneyAccountTypes...)
		if err != nil {
			return err
		}
		if err := postReceipt(p, date, customer, payment, amount, sale.Outstanding(), sale.Ref()); err != nil {
			return err
		}

		sale.PaidAmount = sale.PaidAmount.Add(amount)
		if sale.PaymentAccountID == "" {
			sale.PaymentAccountID = payment.AccountID
		}
		if req.Notes != "" {
			sale.Notes = req.Notes
		}
		sale.Touch(userID, now)
		if err := tx.Sales().UpdateSale(ctx, *sale); err != nil {
			return err
		}
		if err := p.flush(ctx); err != nil {
			return err
		}
		updated = *sale
		return nil
	})
	observePosting("update_sale_payment", err)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to record sale payment", slog.String("sale_id", saleID))
		return nil, err
	}

	s.LogInfo(ctx, "Sale payment recorded", slog.String("sale_id", saleID), slog.String("amount", amount.String()))
	return &updated, nil
}

func (s *saleService) UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest, userID string) (*domain.Sale, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	in, err := s.inputFromRequest(req)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	var updated domain.Sale
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		sale, err := tx.Sales().LockSaleByID(ctx, saleID)
		if err != nil {
			return err
		}
		if err := reverse(ctx, tx, domain.SaleRef, sale.SaleID, userID, now); err != nil {
			return err
		}
		p := newPosting(tx, userID, now)
		if err := s.apply(ctx, p, sale, in); err != nil {
			return err
		}
		sale.Touch(userID, now)
		if err := tx.Sales().UpdateSale(ctx, *sale); err != nil {
			return err
		}
		if err := p.flush(ctx); err != nil {
			return err
		}
		updated = *sale
		return nil
	})
	observePosting("update_sale", err)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update sale", slog.String("sale_id", saleID))
		return nil, err
	}

	s.LogInfo(ctx, "Sale updated", slog.String("sale_id", saleID), slog.String("grand_total", updated.GrandTotal.String()))
	return &updated, nil
}

func (s *saleService) DeleteSale(ctx context.Context, saleID string, userID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	now := s.Now()
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		if _, err := tx.Sales().LockSaleByID(ctx, saleID); err != nil {
			return err
		}
		if err := reverse(ctx, tx, domain.SaleRef, saleID, userID, now); err != nil {
			return err
		}
		return tx.Sales().DeleteSale(ctx, saleID)
	})
	observePosting("delete_sale", err)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete sale", slog.String("sale_id", saleID))
		return err
	}

	s.LogInfo(ctx, "Sale deleted", slog.String("sale_id", saleID))
	return nil
}
