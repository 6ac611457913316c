package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayType enum - drives how period metrics are evaluated.
type PayType string

const (
	// PayTypeMonthly - salaried, attendance scanning required.
	PayTypeMonthly PayType = "MONTHLY"
	// PayTypeMonthlyNoScan - salaried, no attendance tracking; presence is
	// assumed for every scheduled day minus leave.
	PayTypeMonthlyNoScan PayType = "MONTHLY_NOSCAN"
	// PayTypeDaily - paid per attendance unit.
	PayTypeDaily PayType = "DAILY"
)

// Employee entity. StartDate/EndDate bound the days the employee is
// scheduled; days outside the bounds are never evaluated.
type Employee struct {
	ID            string
	FullName      string
	PayType       PayType
	MonthlySalary decimal.Decimal
	DailyRate     decimal.Decimal
	StartDate     *time.Time
	EndDate       *time.Time
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
