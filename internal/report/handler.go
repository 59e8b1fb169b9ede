package report

import (
	"fmt"

	"inventory-backend/internal/request"

	"github.com/gofiber/fiber/v2"
)

type ObservationRequest struct {
	ItemID       string `json:"itemId" validate:"required,uuid"`
	CurrentStock *int   `json:"currentStock" validate:"required,min=0"`
}

// SendReportRequest distinguishes a missing or null stockReport (nil) from an
// empty one.
type SendReportRequest struct {
	StockReport []ObservationRequest `json:"stockReport" validate:"required,dive"`
	Notes       string               `json:"notes"`
}

const (
	msgInvalidReportData = "Invalid stock report data."
	msgInvalidReportID   = "דוח לא תקין."
	msgInvalidBranchID   = "Invalid branch id."
)

// POST /api/:branchId/sendreport
func SendReportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := request.UUIDParam(c, "branchId", msgInvalidBranchID)
		if err != nil {
			return err
		}

		var body SendReportRequest
		if err := request.Bind(c, &body, msgInvalidReportData); err != nil {
			return err
		}

		obs := make([]Observation, 0, len(body.StockReport))
		for _, o := range body.StockReport {
			obs = append(obs, Observation{ItemID: o.ItemID, ObservedQuantity: *o.CurrentStock})
		}

		res, err := svc.Submit(c.UserContext(), branchID, Submission{Notes: body.Notes, Observations: obs})
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": res.Message})
	}
}

// GET /api/reports
func ListReportsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reports, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"reports": reports})
	}
}

// GET /api/reports/:reportId
func GetReportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.UUIDParam(c, "reportId", msgInvalidReportID)
		if err != nil {
			return err
		}
		report, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"report": report})
	}
}

// GET /api/reports/:reportId/export
func ExportReportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.UUIDParam(c, "reportId", msgInvalidReportID)
		if err != nil {
			return err
		}
		report, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}

		f, err := svc.Workbook(report)
		if err != nil {
			return err
		}
		defer f.Close()

		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="report-%s.xlsx"`, report.ID))
		return f.Write(c.Response().BodyWriter())
	}
}
