package report

import (
	"fmt"
	"strings"
	"time"

	"inventory-backend/internal/models"
)

// Observation is one counted item as submitted by an employee.
type Observation struct {
	ItemID           string
	ObservedQuantity int
}

// Reorder is an item whose recorded quantity exceeds the observed count.
type Reorder struct {
	Name     string
	Quantity int
}

// Reconcile diffs the observations against the branch's items, in submission order.
// Each line carries recorded minus observed; ids that match no item get a zero line.
func Reconcile(items []models.Item, observations []Observation) ([]models.ReportLine, []Reorder) {
	byID := make(map[string]models.Item, len(items))
	for _, it := range items {
		byID[strings.ToLower(it.ID)] = it
	}

	lines := make([]models.ReportLine, 0, len(observations))
	var reorder []Reorder
	for _, obs := range observations {
		item, ok := byID[strings.ToLower(obs.ItemID)]
		if !ok {
			lines = append(lines, models.ReportLine{ItemID: obs.ItemID, CurrentStock: 0})
			continue
		}
		delta := item.Quantity - obs.ObservedQuantity
		lines = append(lines, models.ReportLine{ItemID: item.ID, CurrentStock: delta})
		if delta > 0 {
			reorder = append(reorder, Reorder{Name: item.Name, Quantity: delta})
		}
	}
	return lines, reorder
}

const (
	textDateLine    = "תאריך: %s בשעה: %s"
	textBranchLine  = "הזנה למלאי נדרשת עבור הסניף: %s"
	textReorderLine = "- %s: להזמנה %d יחידות"
	textNothing     = "אין צורך בהזמנה של פריטים נוספים כרגע."
	textNotes       = "הערות נוספות:"
	textSubject     = "דוח הזנה למלאי - סניף %s"
)

// ComposeSummary renders the plain-text report body. Dates are rendered in loc
// as D.M.YYYY and HH:MM.
func ComposeSummary(now time.Time, loc *time.Location, branchName string, reorder []Reorder, notes string) string {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	dateLine := fmt.Sprintf(textDateLine, local.Format("2.1.2006"), local.Format("15:04"))

	var b strings.Builder
	b.WriteString(dateLine)
	b.WriteString("\n\n")
	if len(reorder) == 0 {
		b.WriteString(textNothing)
	} else {
		fmt.Fprintf(&b, textBranchLine, branchName)
		b.WriteString("\n\n")
		for _, r := range reorder {
			fmt.Fprintf(&b, textReorderLine, r.Name, r.Quantity)
			b.WriteString("\n")
		}
	}

	if strings.TrimSpace(notes) != "" {
		b.WriteString("\n")
		b.WriteString(textNotes)
		b.WriteString("\n")
		b.WriteString(notes)
	}
	return b.String()
}

func Subject(branchName string) string {
	return fmt.Sprintf(textSubject, branchName)
}
