package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/revature/reimbursement-system/internal/core/domain"
)

const collectionEvents = "ticket_events"

// EventRepository persists the decision audit trail.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

type eventDoc struct {
	TicketID  int64  `bson:"ticket_id"`
	ManagerID int64  `bson:"manager_id"`
	Decision  string `bson:"decision"`
	DecidedAt int64  `bson:"decided_at"`
}

func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.TicketEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := eventDoc{
		TicketID:  event.TicketID,
		ManagerID: event.ManagerID,
		Decision:  string(event.Decision),
		DecidedAt: event.DecidedAt.Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert ticket event: %w", err)
	}
	return nil
}
