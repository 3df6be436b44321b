package handlers

import (
	"errors"
	request "fieldservice/internal/adapter/http/dto/request"
	"fieldservice/internal/domain/pricing"
	"fieldservice/internal/usecase"
	"fieldservice/pkg"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PricebookHandler prices line items against the service catalog.
type PricebookHandler struct {
	usecase usecase.IPricebookUseCase
}

func NewPricebookHandler(uc usecase.IPricebookUseCase) *PricebookHandler {
	return &PricebookHandler{usecase: uc}
}

// Calculate is called on every form change, so it must stay side-effect free.
//
// @Summary  Price line items against the pricebook
// @Tags     pricebook
// @Accept   json
// @Produce  json
// @Param    body  body  request.PricebookRequest  true  "line items"
// @Success  200  {object}  pricing.PricebookResult
// @Failure  400  {object}  pkg.HTTPError
// @Router   /estimate/pricebook [post]
func (h *PricebookHandler) Calculate(c *gin.Context) {
	var payload request.PricebookRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest))
		return
	}
	items, err := payload.ToItems()
	if err != nil {
		writeError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest))
		return
	}

	result, err := h.usecase.Calculate(c.Request.Context(), items)
	if err != nil {
		log.Printf("[pricebook][handler] calculate failed items=%d err=%v", len(items), err)
		writeError(c, mapPricebookError(err))
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary  List the service catalog
// @Tags     pricebook
// @Produce  json
// @Success  200  {array}  entities.CatalogEntry
// @Router   /pricebook [get]
func (h *PricebookHandler) ListCatalog(c *gin.Context) {
	entries, err := h.usecase.ListCatalog(c.Request.Context())
	if err != nil {
		writeError(c, mapPricebookError(err))
		return
	}
	c.JSON(http.StatusOK, entries)
}

func mapPricebookError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, pricing.ErrUnknownCatalogEntry):
		return pkg.NewDomainErrorSimple("UNKNOWN_PRICEBOOK_ENTRY", err.Error(), http.StatusBadRequest)
	case errors.Is(err, pricing.ErrInvalidQuantity), errors.Is(err, pricing.ErrNegativeMaterial):
		return pkg.NewDomainErrorSimple("INVALID_LINE_ITEM", err.Error(), http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
