package domain

// ExpenseType decides who bears an expense.
type ExpenseType string

const (
	// ExpensePersonal reduces only the spending partner's balance.
	ExpensePersonal ExpenseType = "personal"
	// ExpenseCompany is split by equity across all active partners.
	ExpenseCompany ExpenseType = "company"
)

// Expense is money spent in PKR. PartnerID is the stable owner reference;
// ByWhom is the free-text name kept for records entered before ids existed.
type Expense struct {
	ID          string      `json:"id"`
	Amount      float64     `json:"amount"`
	Description string      `json:"description"`
	Date        Date        `json:"date"`
	Category    string      `json:"category"`
	ByWhom      string      `json:"byWhom"`
	PartnerID   string      `json:"partnerId,omitempty"`
	Type        ExpenseType `json:"type"`
}
