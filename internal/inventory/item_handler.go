package inventory

import (
	"strings"

	"inventory-backend/internal/apperr"
	"inventory-backend/internal/request"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Description string           `json:"description" validate:"max=1000"`
	Quantity    *int             `json:"quantity" validate:"required,min=0"`
	Price       *decimal.Decimal `json:"price"`
}

func (r *CreateItemRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

type UpdateItemRequest struct {
	Name        *string          `json:"name" validate:"omitnil,max=255"`
	Description *string          `json:"description" validate:"omitnil,max=1000"`
	Quantity    *int             `json:"quantity" validate:"omitnil,min=0"`
	Price       *decimal.Decimal `json:"price"`
}

func (r *UpdateItemRequest) Normalize() {
	request.TrimPtr(r.Name)
	request.TrimPtr(r.Description)
}

const (
	msgInvalidBranchID = "Invalid branch id."
	msgInvalidItemID   = "Invalid item id."
	msgNegativePrice   = "Price cannot be negative."
)

func itemParams(c *fiber.Ctx) (branchID, itemID string, err error) {
	if branchID, err = request.UUIDParam(c, "branchId", msgInvalidBranchID); err != nil {
		return "", "", err
	}
	if itemID, err = request.UUIDParam(c, "itemId", msgInvalidItemID); err != nil {
		return "", "", err
	}
	return branchID, itemID, nil
}

// GET /api/:branchId/items
func ListItemsHandler(svc *ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := request.UUIDParam(c, "branchId", msgInvalidBranchID)
		if err != nil {
			return err
		}
		items, err := svc.List(c.UserContext(), branchID)
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

// GET /api/:branchId/items/:itemId
func GetItemHandler(svc *ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, itemID, err := itemParams(c)
		if err != nil {
			return err
		}
		item, err := svc.Get(c.UserContext(), branchID, itemID)
		if err != nil {
			return err
		}
		return c.JSON(item)
	}
}

// POST /api/:branchId/items (admin)
func CreateItemHandler(svc *ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := request.UUIDParam(c, "branchId", msgInvalidBranchID)
		if err != nil {
			return err
		}

		var body CreateItemRequest
		if err := request.Bind(c, &body, "Name and quantity are required."); err != nil {
			return err
		}

		in := NewItem{
			Name:        body.Name,
			Description: body.Description,
			Quantity:    *body.Quantity,
		}
		if body.Price != nil {
			if body.Price.IsNegative() {
				return apperr.Validation(msgNegativePrice)
			}
			in.Price = *body.Price
		}

		item, err := svc.Create(c.UserContext(), branchID, in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// PUT /api/:branchId/items/:itemId (admin)
func UpdateItemHandler(svc *ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, itemID, err := itemParams(c)
		if err != nil {
			return err
		}

		var body UpdateItemRequest
		if err := request.Bind(c, &body, "Invalid item data."); err != nil {
			return err
		}
		if body.Price != nil && body.Price.IsNegative() {
			return apperr.Validation(msgNegativePrice)
		}

		item, err := svc.Update(c.UserContext(), branchID, itemID, ItemPatch{
			Name:        body.Name,
			Description: body.Description,
			Quantity:    body.Quantity,
			Price:       body.Price,
		})
		if err != nil {
			return err
		}
		return c.JSON(item)
	}
}

// DELETE /api/:branchId/items/:itemId (admin)
func DeleteItemHandler(svc *ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, itemID, err := itemParams(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), branchID, itemID); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Item deleted successfully."})
	}
}

// Routes mounts the item endpoints on r, which must carry a :branchId parameter.
// Reads need any authenticated role; writes go through adminOnly.
func Routes(r fiber.Router, svc *ItemService, adminOnly fiber.Handler) {
	r.Get("/", ListItemsHandler(svc))
	r.Get("/:itemId", GetItemHandler(svc))
	r.Post("/", adminOnly, CreateItemHandler(svc))
	r.Put("/:itemId", adminOnly, UpdateItemHandler(svc))
	r.Delete("/:itemId", adminOnly, DeleteItemHandler(svc))
}
