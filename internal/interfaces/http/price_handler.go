package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Precios-api/internal/application/dto"
	"github.com/jhoicas/Precios-api/internal/application/ledger"
	"github.com/jhoicas/Precios-api/pkg/logger"
)

// PriceHandler envíos de precios (protegido).
type PriceHandler struct {
	uc  *ledger.UseCase
	log *logger.Logger
}

// NewPriceHandler construye el handler.
func NewPriceHandler(uc *ledger.UseCase, log *logger.Logger) *PriceHandler {
	return &PriceHandler{uc: uc, log: log}
}

// Submit godoc
// @Summary      Reportar precio en un comercio (queda pendiente de revisión)
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitPriceRequest  true  "product_id, store_id, amount"
// @Success      201   {object}  dto.PriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prices [post]
func (h *PriceHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SubmitPrice(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SubmitByStoreName godoc
// @Summary      Reportar precio nombrando el comercio (se crea sin verificar si no existe)
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitPriceByStoreNameRequest  true  "product_id, store_name, amount"
// @Success      201   {object}  dto.PriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prices/by-store-name [post]
func (h *PriceHandler) SubmitByStoreName(c *fiber.Ctx) error {
	var in dto.SubmitPriceByStoreNameRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SubmitPriceAtStore(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Queue godoc
// @Summary      Cola de precios pendientes (revisores)
// @Tags         review
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PendingQueueResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/review/queue [get]
func (h *PriceHandler) Queue(c *fiber.Ctx) error {
	out, err := h.uc.ListPending(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
