package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tallyhq/tally/internal/middleware"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/service"
)

// GroupHandler serves group and membership endpoints.
type GroupHandler struct {
	Groups *service.GroupService
}

type createGroupRequest struct {
	Name string `json:"name"`
}

type groupResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedBy string `json:"created_by"`
	CreatedAt int64  `json:"created_at"`
}

type memberResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

func toGroupResponse(group *models.Group) groupResponse {
	return groupResponse{
		ID:        group.ID,
		Name:      group.Name,
		CreatedBy: group.CreatedBy,
		CreatedAt: group.CreatedAt,
	}
}

// Create handles POST /api/groups.
func (h *GroupHandler) Create(c *fiber.Ctx) error {
	var req createGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	group, err := h.Groups.CreateGroup(c.Context(), req.Name, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(toGroupResponse(group))
}

// List handles GET /api/groups.
func (h *GroupHandler) List(c *fiber.Ctx) error {
	groups, err := h.Groups.ListGroups(c.Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]groupResponse, len(groups))
	for i, group := range groups {
		resp[i] = toGroupResponse(group)
	}
	return c.JSON(resp)
}

// Get handles GET /api/groups/:id.
func (h *GroupHandler) Get(c *fiber.Ctx) error {
	group, err := h.Groups.GetGroup(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toGroupResponse(group))
}

// Join handles POST /api/groups/:id/join.
func (h *GroupHandler) Join(c *fiber.Ctx) error {
	joined, err := h.Groups.Join(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}

	msg := "Already a member"
	if joined {
		msg = "Joined group successfully"
	}
	return c.JSON(fiber.Map{"message": msg})
}

// Leave handles POST /api/groups/:id/leave.
func (h *GroupHandler) Leave(c *fiber.Ctx) error {
	if err := h.Groups.Leave(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Left group successfully"})
}

// Members handles GET /api/groups/:id/members.
func (h *GroupHandler) Members(c *fiber.Ctx) error {
	members, err := h.Groups.Members(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]memberResponse, len(members))
	for i, member := range members {
		resp[i] = memberResponse{
			ID:       member.ID,
			Username: member.Username,
			Name:     member.Name(),
			Email:    member.Email,
		}
	}
	return c.JSON(resp)
}
