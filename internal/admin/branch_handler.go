package admin

import (
	"strings"

	"inventory-backend/internal/apperr"
	"inventory-backend/internal/request"

	"github.com/gofiber/fiber/v2"
)

type CreateBranchRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address" validate:"required,max=255"`
}

func (r *CreateBranchRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
}

type UpdateBranchRequest struct {
	Name    *string `json:"name" validate:"omitnil,min=1,max=100"`
	Address *string `json:"address" validate:"omitnil,min=1,max=255"`
}

func (r *UpdateBranchRequest) Normalize() {
	request.TrimPtr(r.Name)
	request.TrimPtr(r.Address)
}

const msgInvalidBranchID = "Invalid branch id."

// ----------------------------------------
// BRANCH CRUD
// ----------------------------------------

func CreateBranchHandler(svc *BranchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBranchRequest
		if err := request.Bind(c, &body, "Name and address are required."); err != nil {
			return err
		}

		branch, err := svc.Create(c.UserContext(), body.Name, body.Address)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(branch)
	}
}

func ListBranchesHandler(svc *BranchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branches, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(branches)
	}
}

func GetBranchHandler(svc *BranchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.UUIDParam(c, "branchId", msgInvalidBranchID)
		if err != nil {
			return err
		}

		branch, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(branch)
	}
}

func UpdateBranchHandler(svc *BranchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.UUIDParam(c, "branchId", msgInvalidBranchID)
		if err != nil {
			return err
		}

		var body UpdateBranchRequest
		if err := request.Bind(c, &body, "Name and address cannot be empty."); err != nil {
			return err
		}
		if body.Name == nil && body.Address == nil {
			return apperr.Validation("Nothing to update.")
		}

		branch, err := svc.Update(c.UserContext(), id, BranchPatch{Name: body.Name, Address: body.Address})
		if err != nil {
			return err
		}
		return c.JSON(branch)
	}
}
