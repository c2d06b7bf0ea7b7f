package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCheque       PaymentMethod = "cheque"
	PaymentCard         PaymentMethod = "card"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentBankTransfer, PaymentCheque, PaymentCard:
		return true
	}
	return false
}

// String returns the string representation of the payment method
func (m PaymentMethod) String() string {
	return string(m)
}

// Payment is a cash movement against exactly one counterparty: a client
// payment reduces the client's dues, a supplier payment raises the
// supplier's credit (reducing net payable).
type Payment struct {
	shared.TenantEntity
	PaymentNumber string          `gorm:"not null"`
	ClientID      *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierID    *uuid.UUID      `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Method        PaymentMethod   `gorm:"not null"`
	PaymentDate   time.Time
	Remark        string
}

// NewClientPayment records a payment received from a client
func NewClientPayment(tenantID uuid.UUID, paymentNumber string, clientID uuid.UUID, amount decimal.Decimal, method PaymentMethod) (*Payment, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	return newPayment(tenantID, paymentNumber, &clientID, nil, amount, method)
}

// NewSupplierPayment records a payment sent to a supplier
func NewSupplierPayment(tenantID uuid.UUID, paymentNumber string, supplierID uuid.UUID, amount decimal.Decimal, method PaymentMethod) (*Payment, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	return newPayment(tenantID, paymentNumber, nil, &supplierID, amount, method)
}

func newPayment(tenantID uuid.UUID, paymentNumber string, clientID, supplierID *uuid.UUID, amount decimal.Decimal, method PaymentMethod) (*Payment, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if paymentNumber == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_NUMBER", "Payment number cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}

	return &Payment{
		TenantEntity:  shared.NewTenantEntity(tenantID),
		PaymentNumber: paymentNumber,
		ClientID:      clientID,
		SupplierID:    supplierID,
		Amount:        amount,
		Method:        method,
		PaymentDate:   time.Now(),
	}, nil
}

// IsClientPayment reports whether this payment settles client dues
func (p *Payment) IsClientPayment() bool {
	return p.ClientID != nil
}

// IsSupplierPayment reports whether this payment settles a supplier payable
func (p *Payment) IsSupplierPayment() bool {
	return p.SupplierID != nil
}
