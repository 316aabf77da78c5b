package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tallyhq/tally/internal/middleware"
	"github.com/tallyhq/tally/internal/service"
)

// BalanceHandler serves the pairwise and global balance endpoints.
type BalanceHandler struct {
	Balances *service.BalanceService
}

type balanceResponse struct {
	UserID string `json:"user_id"`
	User   string `json:"user"`
	Amount string `json:"amount"`
	Status string `json:"status"`
}

type globalBalanceResponse struct {
	TotalBalance string `json:"total_balance"`
	YouOwe       string `json:"you_owe"`
	OwedToYou    string `json:"owed_to_you"`
}

// GroupBalances handles GET /api/groups/:id/balances. Members with a
// zero net balance are omitted from the response entirely.
func (h *BalanceHandler) GroupBalances(c *fiber.Ctx) error {
	balances, err := h.Balances.GroupBalances(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]balanceResponse, len(balances))
	for i, balance := range balances {
		resp[i] = balanceResponse{
			UserID: balance.UserID,
			User:   balance.Name,
			Amount: balance.Amount.StringFixed(2),
			Status: balance.Direction,
		}
	}
	return c.JSON(resp)
}

// GlobalBalance handles GET /api/balance.
func (h *BalanceHandler) GlobalBalance(c *fiber.Ctx) error {
	balance, err := h.Balances.GlobalBalance(c.Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(globalBalanceResponse{
		TotalBalance: balance.TotalBalance.StringFixed(2),
		YouOwe:       balance.YouOwe.StringFixed(2),
		OwedToYou:    balance.OwedToYou.StringFixed(2),
	})
}
