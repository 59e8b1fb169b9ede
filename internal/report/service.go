// Package report reconciles submitted stock counts against recorded quantities,
// notifies the report recipient and keeps the submitted reports.
package report

import (
	"context"
	"errors"
	"strings"
	"time"

	"inventory-backend/internal/apperr"
	"inventory-backend/internal/models"
	"inventory-backend/internal/notify"
	"inventory-backend/internal/store"

	"github.com/sirupsen/logrus"
)

type Store interface {
	GetBranch(ctx context.Context, id string) (*models.Branch, error)
	ListItems(ctx context.Context, branchID string) ([]models.Item, error)
	ItemsByIDs(ctx context.Context, ids []string) ([]models.Item, error)
	CreateReport(ctx context.Context, report *models.Report) error
	ListReports(ctx context.Context) ([]models.Report, error)
	GetReport(ctx context.Context, id string) (*models.Report, error)
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	MsgSubmitted      = "דוח נשלח והנשמר בהצלחה."
	msgSubmitFailed   = "אירעה שגיאה בשליחת הדוח."
	msgListFailed     = "אירעה שגיאה בשליפת הדוחות."
	msgGetFailed      = "אירעה שגיאה בשליפת הדוח."
	msgReportNotFound = "דוח לא נמצא."
	msgBranchNotFound = "Branch not found."
)

type Submission struct {
	Notes        string
	Observations []Observation
}

type Result struct {
	Message string
	Report  *models.Report
	// Notified is false when there was nothing to order and no notes.
	Notified bool
}

type Service struct {
	store     Store
	notifier  notify.Notifier
	recipient string
	loc       *time.Location
	now       func() time.Time
	logger    *logrus.Logger
}

type Option func(*Service)

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(st Store, n notify.Notifier, recipient string, loc *time.Location, logger *logrus.Logger, opts ...Option) *Service {
	if loc == nil {
		loc = time.UTC
	}
	s := &Service{
		store:     st,
		notifier:  n,
		recipient: recipient,
		loc:       loc,
		now:       time.Now,
		logger:    logger,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Submit reconciles the submission against the branch's items, notifies the
// recipient when something must be ordered or notes were given, and stores the
// report. The report is only kept if the notification went out.
func (s *Service) Submit(ctx context.Context, branchID string, sub Submission) (*Result, error) {
	branch, err := s.store.GetBranch(ctx, branchID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound(msgBranchNotFound)
		}
		return nil, apperr.Internal(msgSubmitFailed, err)
	}

	items, err := s.store.ListItems(ctx, branch.ID)
	if err != nil {
		return nil, apperr.Internal(msgSubmitFailed, err)
	}

	lines, reorder := Reconcile(items, sub.Observations)
	now := s.now().UTC()
	hasNotes := strings.TrimSpace(sub.Notes) != ""
	shouldNotify := len(reorder) > 0 || hasNotes

	report := &models.Report{
		BranchID:    branch.ID,
		StockReport: lines,
		Notes:       sub.Notes,
		DateSent:    now,
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.store.CreateReport(ctx, report); err != nil {
			return err
		}
		if !shouldNotify {
			return nil
		}
		return s.notifier.Send(ctx, notify.Message{
			To:      s.recipient,
			Subject: Subject(branch.Name),
			Body:    ComposeSummary(now, s.loc, branch.Name, reorder, sub.Notes),
		})
	})
	if err != nil {
		return nil, apperr.Internal(msgSubmitFailed, err)
	}

	s.logger.WithFields(logrus.Fields{
		"module":    "report",
		"branch_id": branch.ID,
		"report_id": report.ID,
		"lines":     len(lines),
		"reorder":   len(reorder),
		"notified":  shouldNotify,
	}).Info("stock report submitted")

	return &Result{Message: MsgSubmitted, Report: report, Notified: shouldNotify}, nil
}

func (s *Service) List(ctx context.Context) ([]View, error) {
	reports, err := s.store.ListReports(ctx)
	if err != nil {
		return nil, apperr.Internal(msgListFailed, err)
	}
	items, err := s.itemsFor(ctx, reports...)
	if err != nil {
		return nil, apperr.Internal(msgListFailed, err)
	}
	views := make([]View, 0, len(reports))
	for i := range reports {
		views = append(views, newView(&reports[i], items))
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	r, err := s.store.GetReport(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound(msgReportNotFound)
		}
		return nil, apperr.Internal(msgGetFailed, err)
	}
	items, err := s.itemsFor(ctx, *r)
	if err != nil {
		return nil, apperr.Internal(msgGetFailed, err)
	}
	v := newView(r, items)
	return &v, nil
}

func (s *Service) itemsFor(ctx context.Context, reports ...models.Report) (map[string]models.Item, error) {
	seen := map[string]struct{}{}
	var ids []string
	for _, r := range reports {
		for _, l := range r.StockReport {
			if _, ok := seen[l.ItemID]; !ok {
				seen[l.ItemID] = struct{}{}
				ids = append(ids, l.ItemID)
			}
		}
	}
	items, err := s.store.ItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.Item, len(items))
	for _, it := range items {
		out[strings.ToLower(it.ID)] = it
	}
	return out, nil
}
