package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Precios-api/internal/application/aggregation"
	"github.com/jhoicas/Precios-api/internal/application/catalog"
	"github.com/jhoicas/Precios-api/internal/application/dto"
	"github.com/jhoicas/Precios-api/pkg/logger"
)

// ProductHandler catálogo de productos y sus lecturas de precio.
type ProductHandler struct {
	catalog     *catalog.UseCase
	aggregation *aggregation.UseCase
	log         *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(cat *catalog.UseCase, agg *aggregation.UseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{catalog: cat, aggregation: agg, log: log}
}

// Create godoc
// @Summary      Crear producto (+20 puntos al creador)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.CreateProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.catalog.CreateProduct(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.catalog.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByBarcode godoc
// @Summary      Buscar producto por código de barras
// @Tags         products
// @Produce      json
// @Param        code  path  string  true  "Código de barras"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/barcode/{code} [get]
func (h *ProductHandler) GetByBarcode(c *fiber.Ctx) error {
	out, err := h.catalog.FindProductByBarcode(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// LowestPrice godoc
// @Summary      Precio verificado más bajo del producto (null si no hay)
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.LowestPriceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/lowest-price [get]
func (h *ProductHandler) LowestPrice(c *fiber.Ctx) error {
	out, err := h.aggregation.LowestPrice(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"lowest_price": out})
}

// Prices godoc
// @Summary      Precios verificados del producto, de menor a mayor
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductPricesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/prices [get]
func (h *ProductHandler) Prices(c *fiber.Ctx) error {
	out, err := h.aggregation.ProductPrices(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar productos por nombre, marca o código
// @Tags         products
// @Produce      json
// @Param        q    query  string  true  "Término"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	out, err := h.aggregation.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Featured godoc
// @Summary      Productos con precios verificados recientes
// @Tags         products
// @Produce      json
// @Param        n    query  int  false  "Cantidad de precios recientes (1-100, default 10)"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/featured [get]
func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	n := 0
	if raw := c.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "n debe ser un entero positivo"})
		}
		n = v
	}
	out, err := h.aggregation.Featured(c.UserContext(), n)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
