package document

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category enum - each category numbers its documents independently.
type Category string

const (
	CategoryPurchase    Category = "PURCHASE"
	CategoryInvoice     Category = "INVOICE"
	CategoryReceipt     Category = "RECEIPT"
	CategoryBillingNote Category = "BILLING_NOTE"
	CategoryQuotation   Category = "QUOTATION"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryPurchase, CategoryInvoice, CategoryReceipt, CategoryBillingNote, CategoryQuotation:
		return true
	}
	return false
}

// Status enum
type Status string

const (
	StatusDraft     Status = "draft"
	StatusIssued    Status = "issued"
	StatusCancelled Status = "cancelled"
)

// BusinessDocument entity. DocNo is assigned exactly once, at creation, and
// is unique within its category.
type BusinessDocument struct {
	ID        string
	Category  Category
	DocNo     string
	DocDate   time.Time
	Title     string
	PartyName string
	Amount    decimal.Decimal
	Notes     *string
	Status    Status
	CreatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NumberSettings - per-category numbering configuration.
type NumberSettings struct {
	Category  Category
	Prefix    string
	UpdatedAt time.Time
}

// Counter - the last issued sequence for one (fiscal year, counter key).
type Counter struct {
	Year       int
	CounterKey string
	Value      int
	UpdatedAt  time.Time
}

// CounterKey names the counter row for a category and prefix. Categories
// sharing a prefix still advance independent counters.
func CounterKey(category Category, prefix string) string {
	return fmt.Sprintf("%s_%s_count", category, prefix)
}

// FormatDocNo renders a document number, e.g. PUR2024-0007.
func FormatDocNo(prefix string, year, seq int) string {
	return fmt.Sprintf("%s%d-%04d", prefix, year, seq)
}

// NumberPrefix is the shared leading part of every document number issued
// under a prefix and fiscal year, e.g. "PUR2024-".
func NumberPrefix(prefix string, year int) string {
	return fmt.Sprintf("%s%d-", prefix, year)
}

// ParseSequence extracts the numeric suffix of a document number under the
// given number prefix. Returns false when docNo does not belong to the prefix
// or the suffix is not a number.
func ParseSequence(docNo, numberPrefix string) (int, bool) {
	suffix, found := strings.CutPrefix(docNo, numberPrefix)
	if !found || suffix == "" {
		return 0, false
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}
