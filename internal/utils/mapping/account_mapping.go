package mapping

import (
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/dairyworks/farm_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		AccountType:    string(d.AccountType),
		AccountName:    d.AccountName,
		CustomerName:   d.CustomerName,
		SupplierName:   d.SupplierName,
		Phone:          d.Phone,
		Address:        d.Address,
		InitialBalance: d.InitialBalance,
		Balance:        d.Balance,
		BalanceMethod:  string(d.BalanceMethod),
		IsActive:       d.IsActive,
		AuditRow:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		AccountType:    domain.AccountType(m.AccountType),
		AccountName:    m.AccountName,
		CustomerName:   m.CustomerName,
		SupplierName:   m.SupplierName,
		Phone:          m.Phone,
		Address:        m.Address,
		InitialBalance: m.InitialBalance,
		Balance:        m.Balance,
		BalanceMethod:  domain.BalanceMethod(m.BalanceMethod),
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditRow),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
