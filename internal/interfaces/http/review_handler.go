package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Precios-api/internal/application/dto"
	"github.com/jhoicas/Precios-api/internal/application/review"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/pkg/logger"
)

// ReviewHandler decisiones de revisores sobre precios pendientes.
type ReviewHandler struct {
	uc  *review.UseCase
	log *logger.Logger
}

// NewReviewHandler construye el handler.
func NewReviewHandler(uc *review.UseCase, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{uc: uc, log: log}
}

// Review godoc
// @Summary      Aprobar o rechazar un precio pendiente
// @Tags         review
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del precio"
// @Param        body  body  dto.ReviewPriceRequest  true  "decision: approve | reject"
// @Success      200   {object}  dto.ReviewPriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/review/prices/{id} [post]
func (h *ReviewHandler) Review(c *fiber.Ctx) error {
	var in dto.ReviewPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ReviewPrice(c.UserContext(), GetUserID(c), c.Params("id"), entity.Decision(in.Decision))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Validations godoc
// @Summary      Historial de validaciones de un precio
// @Tags         review
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del precio"
// @Success      200  {object}  dto.ValidationListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/review/prices/{id}/validations [get]
func (h *ReviewHandler) Validations(c *fiber.Ctx) error {
	out, err := h.uc.ListValidations(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
