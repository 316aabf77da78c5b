package handler

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/middleware"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/service"
)

// ExpenseHandler serves expense, settlement, and activity endpoints.
type ExpenseHandler struct {
	Expenses  *service.ExpenseService
	Directory *service.Directory
}

type splitRequest struct {
	UserID string          `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

type createExpenseRequest struct {
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Splits         []splitRequest  `json:"splits"`
	RelatedEntryID string          `json:"related_entry_id"`
}

type settleRequest struct {
	ToUserID string          `json:"to_user_id"`
	Amount   decimal.Decimal `json:"amount"`
}

type splitResponse struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Amount   string `json:"amount"`
}

type entryResponse struct {
	ID             string          `json:"id"`
	GroupID        string          `json:"group_id"`
	Description    string          `json:"description"`
	Amount         string          `json:"amount"`
	Category       string          `json:"category"`
	PaidBy         string          `json:"paid_by"`
	PaidByName     string          `json:"paid_by_name"`
	RelatedEntryID string          `json:"related_entry_id,omitempty"`
	CreatedAt      int64           `json:"created_at"`
	Splits         []splitResponse `json:"splits"`
}

// CreateExpense handles POST /api/groups/:id/expenses.
func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	var req createExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	splits := make([]models.Split, len(req.Splits))
	for i, split := range req.Splits {
		splits[i] = models.Split{UserID: split.UserID, Amount: split.Amount}
	}

	entry, err := h.Expenses.CreateExpense(c.Context(),
		c.Params("id"), middleware.UserID(c), req.Description, req.Amount, splits, req.RelatedEntryID)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.renderEntries(c.Context(), []*models.Entry{entry})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(resp[0])
}

// ListExpenses handles GET /api/groups/:id/expenses.
func (h *ExpenseHandler) ListExpenses(c *fiber.Ctx) error {
	entries, err := h.Expenses.ListGroupEntries(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.renderEntries(c.Context(), entries)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Settle handles POST /api/groups/:id/settle.
func (h *ExpenseHandler) Settle(c *fiber.Ctx) error {
	var req settleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	entry, err := h.Expenses.RecordSettlement(c.Context(),
		c.Params("id"), middleware.UserID(c), req.ToUserID, req.Amount)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.renderEntries(c.Context(), []*models.Entry{entry})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(resp[0])
}

// Activity handles GET /api/activity: entries from every group the
// user belongs to, newest first.
func (h *ExpenseHandler) Activity(c *fiber.Ctx) error {
	entries, err := h.Expenses.ListActivity(c.Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.renderEntries(c.Context(), entries)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// renderEntries converts entries to response form, resolving every
// payer and split user name in a single lookup.
func (h *ExpenseHandler) renderEntries(ctx context.Context, entries []*models.Entry) ([]entryResponse, error) {
	var ids []string
	for _, entry := range entries {
		ids = append(ids, entry.PaidBy)
		for _, split := range entry.Splits {
			ids = append(ids, split.UserID)
		}
	}

	names, err := h.Directory.Names(ctx, ids)
	if err != nil {
		return nil, err
	}

	resp := make([]entryResponse, len(entries))
	for i, entry := range entries {
		splits := make([]splitResponse, len(entry.Splits))
		for j, split := range entry.Splits {
			splits[j] = splitResponse{
				UserID:   split.UserID,
				UserName: names[split.UserID],
				Amount:   split.Amount.StringFixed(2),
			}
		}
		resp[i] = entryResponse{
			ID:             entry.ID,
			GroupID:        entry.GroupID,
			Description:    entry.Description,
			Amount:         entry.Amount.StringFixed(2),
			Category:       string(entry.Category),
			PaidBy:         entry.PaidBy,
			PaidByName:     names[entry.PaidBy],
			RelatedEntryID: entry.RelatedEntryID,
			CreatedAt:      entry.CreatedAt,
			Splits:         splits,
		}
	}
	return resp, nil
}
