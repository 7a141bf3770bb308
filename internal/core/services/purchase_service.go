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

type purchaseService struct {
	BaseService
	uow                 portsrepo.UnitOfWork
	purchaseAccountName string
}

// NewPurchaseService creates the purchase posting service.
func NewPurchaseService(uow portsrepo.UnitOfWork, names AccountNames, opts ...ServiceOption) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		BaseService:         newBaseService(opts),
		uow:                 uow,
		purchaseAccountName: names.withDefaults().Purchase,
	}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

func (s *purchaseService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, userID string) (*domain.Purchase, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	date, err := s.documentDate(req.Date)
	if err != nil {
		return nil, err
	}
	paid := domain.RoundMoney(req.PaidAmount)
	if paid.IsNegative() {
		return nil, fmt.Errorf("%w: paid amount must not be negative", apperrors.ErrValidation)
	}

	now := s.Now()
	var created domain.Purchase
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		p := newPosting(tx, userID, now)
		supplier, err := p.account(ctx, "supplier", req.SupplierAccountID, domain.SupplierAccount)
		if err != nil {
			return err
		}
		purchaseAcc, err := p.wellKnownAccount(ctx, domain.PurchaseAccount, s.purchaseAccountName)
		if err != nil {
			return err
		}
		items, err := p.priceLines(ctx, toLineInputs(req.Items))
		if err != nil {
			return err
		}
		total, err := documentTotal(items, req.Discount)
		if err != nil {
			return err
		}
		var payment domain.Account
		if paid.IsPositive() {
			if payment, err = p.account(ctx, "payment", req.PaymentAccountID, moneyAccountTypes...); err != nil {
				return err
			}
		}

		number, err := tx.Sequences().NextNumber(ctx, domain.PurchaseSequence)
		if err != nil {
			return err
		}
		purchase := domain.Purchase{
			PurchaseID:        uuid.NewString(),
			PurchaseNumber:    number,
			SupplierAccountID: supplier.AccountID,
			Date:              date,
			Items:             items,
			Discount:          domain.RoundMoney(req.Discount),
			GrandTotal:        total,
			PaidAmount:        paid,
			PaymentAccountID:  payment.AccountID,
			Notes:             req.Notes,
			AuditFields:       domain.NewAuditFields(userID, now),
		}
		ref := purchase.Ref()
		party := supplier.DisplayName()

		if _, err := p.add(date, purchaseAcc, supplier, total, "Purchase "+ref.Number, map[string]string{
			purchaseAcc.AccountID: fmt.Sprintf("Purchase %s from %s", ref.Number, party),
			supplier.AccountID:    "Purchase bill " + ref.Number,
		}, &ref); err != nil {
			return err
		}
		if paid.IsPositive() {
			if err := postDisbursement(p, date, supplier, payment, paid, total, ref); err != nil {
				return err
			}
		}
		for _, it := range items {
			if err := p.moveStock(ctx, it.Item, it.Quantity, ref, date); err != nil {
				return err
			}
		}

		if err := tx.Purchases().SavePurchase(ctx, purchase); err != nil {
			return err
		}
		if err := p.flush(ctx); err != nil {
			return err
		}
		created = purchase
		return nil
	})
	observePosting("create_purchase", err)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create purchase", slog.String("supplier_id", req.SupplierAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Purchase created",
		slog.String("purchase_id", created.PurchaseID),
		slog.Int64("purchase_number", created.PurchaseNumber),
		slog.String("grand_total", created.GrandTotal.String()))
	return &created, nil
}

// postDisbursement records amount paid to supplier from payment against ref, splitting
// any excess over outstanding into an advance.
func postDisbursement(p *posting, date time.Time, supplier, payment domain.Account, amount, outstanding decimal.Decimal, ref domain.DocumentRef) error {
	party := supplier.DisplayName()
	settled := decimal.Min(amount, outstanding)
	if settled.IsPositive() {
		if _, err := p.add(date, supplier, payment, settled, "Payment against "+ref.Number, map[string]string{
			supplier.AccountID: fmt.Sprintf("Payment for %s via %s", ref.Number, payment.DisplayName()),
			payment.AccountID:  fmt.Sprintf("Payment to %s against %s", party, ref.Number),
		}, &ref); err != nil {
			return err
		}
	}
	excess := amount.Sub(settled)
	if excess.IsPositive() {
		if _, err := p.add(date, supplier, payment, excess, "Advance with "+ref.Number, map[string]string{
			supplier.AccountID: fmt.Sprintf("Advance for %s via %s", ref.Number, payment.DisplayName()),
			payment.AccountID:  fmt.Sprintf("Advance paid to %s with %s", party, ref.Number),
		}, &ref); err != nil {
			return err
		}
	}
	return nil
}

func (s *purchaseService) GetPurchase(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	purchase, err := s.uow.Purchases().FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get purchase", slog.String("purchase_id", purchaseID))
		return nil, err
	}
	return purchase, nil
}

func (s *purchaseService) ListPurchasesByDate(ctx context.Context, date string) ([]domain.Purchase, error) {
	day, err := daterange.ParseDate(date)
	if err != nil {
		return nil, err
	}
	purchases, err := s.uow.Purchases().ListPurchasesByDate(ctx, daterange.Day(day))
	if err != nil {
		s.LogError(ctx, err, "Failed to list purchases", slog.String("date", date))
		return nil, err
	}
	return purchases, nil
}
