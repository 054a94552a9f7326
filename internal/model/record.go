package model

import (
	"github.com/shopspring/decimal"
)

// TransactionType is the type tag of a ledger line. The simulation's vocabulary
// is open: tags not listed below are kept verbatim.
type TransactionType string

const (
	TypeRevenue          TransactionType = "Revenue"
	TypeWage             TransactionType = "Wage"
	TypeReplacementWage  TransactionType = "Replacement Wage"
	TypeMarketing        TransactionType = "Marketing"
	TypeHealthInsurance  TransactionType = "Health Insurance"
	TypeHRTraining       TransactionType = "HR Training"
	TypeRent             TransactionType = "Rent"
	TypeLoanPayment      TransactionType = "Loan Payment"
	TypeTaxPayment       TransactionType = "Tax Payment"
	TypeBankNegativeRate TransactionType = "Bank Negative Interest Rate"
	TypeDeliveryContract TransactionType = "Delivery Contract"
	TypeItemPurchase     TransactionType = "Item Purchase"
	TypeImportDelivery   TransactionType = "Import Delivery"
	TypeInteriorDesigner TransactionType = "Interior Designer"
)

// KnownTypes returns the transaction types the simulation is known to emit.
func KnownTypes() []TransactionType {
	return []TransactionType{
		TypeRevenue, TypeWage, TypeReplacementWage, TypeMarketing,
		TypeHealthInsurance, TypeHRTraining, TypeRent, TypeLoanPayment,
		TypeTaxPayment, TypeBankNegativeRate, TypeDeliveryContract,
		TypeItemPurchase, TypeImportDelivery, TypeInteriorDesigner,
	}
}

// IsWage reports whether t pays an employee (regular or replacement).
func (t TransactionType) IsWage() bool {
	return t == TypeWage || t == TypeReplacementWage
}

// Days outside [MinDay, MaxDay] are rejected, so the distance between any two
// valid days fits in an int64.
const (
	MinDay int64 = -MaxDay
	MaxDay int64 = 1<<62 - 1
)

// ValidDay reports whether d is a usable simulation day on this platform.
func ValidDay(d int64) bool {
	return d >= MinDay && d <= MaxDay && d == int64(int(d))
}

// Record is one parsed ledger line.
type Record struct {
	Description string
	Day         int
	Type        TransactionType
	Price       decimal.Decimal // positive = inflow, negative = outflow
	Balance     decimal.Decimal // running balance, informational only
}

// Category is the P&L bucket a record falls into.
type Category string

const (
	CategoryRevenue            Category = "revenue"
	CategoryDirectCost         Category = "direct_cost"
	CategorySharedRevenueBased Category = "shared_revenue_based"
	CategorySharedEqualSplit   Category = "shared_equal_split"
	CategoryPersonal           Category = "personal"
	CategoryUnknown            Category = "unknown"
)
