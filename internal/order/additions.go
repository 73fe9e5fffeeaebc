package order

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-mesa/internal/events"
)

// ListNew returns the restaurant's additions still waiting for the kitchen,
// oldest first.
func (s *Service) ListNew(ctx context.Context, restaurantID int64) ([]Addition, error) {
	out, err := s.repo.ListAdditions(ctx, AdditionFilter{RestaurantID: restaurantID, Status: AdditionNew})
	if err != nil {
		return nil, fmt.Errorf("list additions: %w", err)
	}
	return out, nil
}

// MarkPreparing acknowledges an addition. Calling it again is a no-op.
func (s *Service) MarkPreparing(ctx context.Context, restaurantID, additionID int64) error {
	if err := s.repo.MarkAdditionPreparing(ctx, restaurantID, additionID); err != nil {
		return fmt.Errorf("mark addition: %w", err)
	}
	s.log.Debug("addition preparing",
		zap.Int64("restaurant_id", restaurantID),
		zap.Int64("addition_id", additionID))
	s.notify(events.AdditionPreparing, restaurantID, 0, additionID)
	return nil
}
