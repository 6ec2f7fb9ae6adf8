package handler

import (
	"net/http"

	"github.com/osse101/DreamJournal_Go/internal/shop"
)

// ShopHandler serves the YC shop
type ShopHandler struct {
	shop shop.Service
}

// NewShopHandler creates a new shop handler
func NewShopHandler(svc shop.Service) *ShopHandler {
	return &ShopHandler{shop: svc}
}

// HandleListItems returns the active shop items
// @Summary Shop items
// @Tags shop
// @Produce json
// @Success 200 {array} domain.ShopItem
// @Router /api/v1/shop/items [get]
func (h *ShopHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.shop.ListItems(r.Context())
	if err != nil {
		respondServiceError(w, r, "List shop items", err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// HandleRedeem spends YC on an item
// @Summary Redeem item
// @Tags shop
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item id"
// @Success 200 {object} domain.RedemptionResult
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/me/shop/{id}/redeem [post]
func (h *ShopHandler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}
	itemID, ok := pathParam(r, w, "id")
	if !ok {
		return
	}

	res, err := h.shop.Redeem(r.Context(), userID, itemID)
	if err != nil {
		respondServiceError(w, r, "Redeem item", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
