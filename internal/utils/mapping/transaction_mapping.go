package mapping

import (
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/peraplan/peraplan_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:         d.TransactionID,
		UserID:                d.UserID,
		AccountID:             d.AccountID,
		CategoryID:            d.CategoryID,
		AllocationID:          d.AllocationID,
		ScheduleEntryID:       d.ScheduleEntryID,
		Amount:                d.Amount,
		CurrencyCode:          d.CurrencyCode,
		Description:           d.Description,
		TransactionType:       models.TransactionType(d.TransactionType),
		TransactionDate:       d.TransactionDate,
		PostingDate:           d.PostingDate,
		TransferFromAccountID: d.TransferFromAccountID,
		TransferToAccountID:   d.TransferToAccountID,
		TransferFee:           d.TransferFee,
		ReceiptURL:            d.ReceiptURL,
		InvoiceURL:            d.InvoiceURL,
		IsPosted:              d.IsPosted,
		IsReconciled:          d.IsReconciled,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:         m.TransactionID,
		UserID:                m.UserID,
		AccountID:             m.AccountID,
		CategoryID:            m.CategoryID,
		AllocationID:          m.AllocationID,
		ScheduleEntryID:       m.ScheduleEntryID,
		Amount:                m.Amount,
		CurrencyCode:          m.CurrencyCode,
		Description:           m.Description,
		TransactionType:       domain.TransactionType(m.TransactionType),
		TransactionDate:       m.TransactionDate,
		PostingDate:           m.PostingDate,
		TransferFromAccountID: m.TransferFromAccountID,
		TransferToAccountID:   m.TransferToAccountID,
		TransferFee:           m.TransferFee,
		ReceiptURL:            m.ReceiptURL,
		InvoiceURL:            m.InvoiceURL,
		IsPosted:              m.IsPosted,
		IsReconciled:          m.IsReconciled,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
