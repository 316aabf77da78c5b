package service

import (
	"context"
	"log/slog"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

// GroupService manages groups and membership. Membership is purely an
// access and visibility predicate: it owns no ledger entries, and
// joining or leaving never rewrites history.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group with the creator as its first member.
// The group row and the creator's membership commit in one transaction.
func (s *GroupService) CreateGroup(ctx context.Context, name, creatorID string) (*models.Group, error) {
	if name == "" {
		return nil, ledger.Validationf("group name is required")
	}

	group := &models.Group{
		Name:      name,
		CreatedBy: creatorID,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "name", name, "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "created_by", creatorID)
	return group, nil
}

// GetGroup retrieves a group. Only current members may view it.
func (s *GroupService) GetGroup(ctx context.Context, groupID, userID string) (*models.Group, error) {
	group, err := s.requireMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups returns the groups the user belongs to, newest first.
func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.ListGroupsForUser(ctx, userID)
}

// Join adds the user to the group. Joining a group you already belong
// to is a no-op; the returned bool reports whether a membership was
// actually created.
func (s *GroupService) Join(ctx context.Context, groupID, userID string) (bool, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return false, err
	}
	if group == nil {
		return false, ledger.NotFound("group", groupID)
	}

	joined, err := s.store.AddMember(ctx, groupID, userID)
	if err != nil {
		slog.Error("Join failed", "group_id", groupID, "user_id", userID, "error", err)
		return false, err
	}

	if joined {
		slog.Info("User joined group", "group_id", groupID, "user_id", userID)
	}
	return joined, nil
}

// Leave removes the user from the group.
func (s *GroupService) Leave(ctx context.Context, groupID, userID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ledger.NotFound("group", groupID)
	}

	removed, err := s.store.RemoveMember(ctx, groupID, userID)
	if err != nil {
		slog.Error("Leave failed", "group_id", groupID, "user_id", userID, "error", err)
		return err
	}
	if !removed {
		return ledger.Validationf("you are not in this group")
	}

	slog.Info("User left group", "group_id", groupID, "user_id", userID)
	return nil
}

// Members returns the group's current members. Only members may see
// the member list.
func (s *GroupService) Members(ctx context.Context, groupID, userID string) ([]*models.User, error) {
	if _, err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.store.ListMembers(ctx, groupID)
}

// requireMember loads the group and verifies the user's membership.
func (s *GroupService) requireMember(ctx context.Context, groupID, userID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ledger.NotFound("group", groupID)
	}

	member, err := s.store.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ledger.Authorizationf("you are not a member of this group")
	}
	return group, nil
}
