package report

import (
	"strings"
	"time"

	"inventory-backend/internal/models"

	"github.com/shopspring/decimal"
)

type BranchRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ItemRef carries only the id when the item no longer exists or never did.
type ItemRef struct {
	ID          string           `json:"id"`
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

type LineView struct {
	Item         ItemRef `json:"itemId"`
	CurrentStock int     `json:"currentStock"`
}

// View is a stored report with its branch and items resolved.
type View struct {
	ID          string     `json:"id"`
	Branch      BranchRef  `json:"branchId"`
	StockReport []LineView `json:"stockReport"`
	Notes       string     `json:"notes"`
	DateSent    time.Time  `json:"dateSent"`
}

func newView(r *models.Report, items map[string]models.Item) View {
	v := View{
		ID:          r.ID,
		Branch:      BranchRef{ID: r.BranchID},
		StockReport: make([]LineView, 0, len(r.StockReport)),
		Notes:       r.Notes,
		DateSent:    r.DateSent,
	}
	if r.Branch != nil {
		v.Branch.Name = r.Branch.Name
	}
	for _, l := range r.StockReport {
		ref := ItemRef{ID: l.ItemID}
		if it, ok := items[strings.ToLower(l.ItemID)]; ok {
			price := it.Price
			ref.Name, ref.Description, ref.Price = it.Name, it.Description, &price
		}
		v.StockReport = append(v.StockReport, LineView{Item: ref, CurrentStock: l.CurrentStock})
	}
	return v
}
