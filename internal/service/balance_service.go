package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/storage"
)

// Direction labels for pairwise balances, from the requesting user's
// point of view.
const (
	DirectionOwed = "You are owed"
	DirectionOwe  = "You owe"
)

// Balance is one pairwise net balance for presentation: the
// counterparty, the resolved name, the signed amount, and a direction
// label. Zero-net counterparties are never included.
type Balance struct {
	UserID    string
	Name      string
	Amount    decimal.Decimal
	Direction string
}

// BalanceService derives balances from the ledger. It is stateless and
// read-only: everything comes from aggregate queries over the entries,
// and it never mutates the store.
type BalanceService struct {
	store     storage.Store
	directory *Directory
}

// NewBalanceService creates a new BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store, directory: NewDirectory(store)}
}

// GroupBalances computes the user's net balance against every other
// member of the group. The computation is two aggregate queries (one
// per direction) merged by counterparty, not one query per member.
// Members with a zero net balance are omitted entirely.
func (s *BalanceService) GroupBalances(ctx context.Context, groupID, userID string) ([]Balance, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	paid, err := s.store.SumsPaidBy(ctx, groupID, userID)
	if err != nil {
		slog.Error("GroupBalances failed", "group_id", groupID, "error", err)
		return nil, err
	}
	owed, err := s.store.SumsOwedBy(ctx, groupID, userID)
	if err != nil {
		slog.Error("GroupBalances failed", "group_id", groupID, "error", err)
		return nil, err
	}

	nets := ledger.MergeNets(paid, owed)
	if len(nets) == 0 {
		return []Balance{}, nil
	}

	ids := make([]string, len(nets))
	for i, net := range nets {
		ids[i] = net.UserID
	}
	names, err := s.directory.Names(ctx, ids)
	if err != nil {
		return nil, err
	}

	balances := make([]Balance, len(nets))
	for i, net := range nets {
		direction := DirectionOwed
		if net.Amount.IsNegative() {
			direction = DirectionOwe
		}
		balances[i] = Balance{
			UserID:    net.UserID,
			Name:      names[net.UserID],
			Amount:    net.Amount,
			Direction: direction,
		}
	}
	return balances, nil
}

// GlobalBalance computes the user's position across all of their
// groups: what they owe, what they are owed, and the net of the two.
func (s *BalanceService) GlobalBalance(ctx context.Context, userID string) (ledger.GlobalBalance, error) {
	owedToYou, youOwe, err := s.store.GlobalSums(ctx, userID)
	if err != nil {
		slog.Error("GlobalBalance failed", "user_id", userID, "error", err)
		return ledger.GlobalBalance{}, err
	}
	return ledger.Global(owedToYou, youOwe), nil
}

// requireMember verifies the group exists and the user belongs to it.
// Balance visibility uses the same authorization rule as writes.
func (s *BalanceService) requireMember(ctx context.Context, groupID, userID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ledger.NotFound("group", groupID)
	}

	member, err := s.store.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ledger.Authorizationf("you are not a member of this group")
	}
	return nil
}
