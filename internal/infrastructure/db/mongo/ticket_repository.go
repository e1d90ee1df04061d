package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/revature/reimbursement-system/internal/core/domain"
	"github.com/revature/reimbursement-system/internal/core/ports"
)

const collectionTickets = "reimbursement_tickets"

// TicketRepository persists reimbursement tickets.
type TicketRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{db: db, col: db.Collection(collectionTickets)}
}

type ticketDoc struct {
	ID          int64   `bson:"_id"`
	OwnerID     int64   `bson:"owner_id"`
	Amount      float64 `bson:"amount"`
	Description string  `bson:"description"`
	Status      string  `bson:"status"`
}

func (d ticketDoc) toDomain() *domain.ReimbursementTicket {
	return &domain.ReimbursementTicket{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		Amount:      d.Amount,
		Description: d.Description,
		Status:      domain.TicketStatus(d.Status),
	}
}

func (r *TicketRepository) Create(ctx context.Context, ownerID int64, amount float64, description string) (*domain.ReimbursementTicket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionTickets)
	if err != nil {
		return nil, err
	}

	doc := ticketDoc{
		ID:          id,
		OwnerID:     ownerID,
		Amount:      amount,
		Description: description,
		Status:      string(domain.StatusPending),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert ticket: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id int64) (*domain.ReimbursementTicket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc ticketDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return doc.toDomain(), nil
}

// ConditionalSetStatus performs the decide transition as a single filtered
// update: the document must still carry the expected status for the write to
// match. Of two racing decisions, exactly one observes ModifiedCount == 1.
func (r *TicketRepository) ConditionalSetStatus(ctx context.Context, id int64, expected, next domain.TicketStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": string(expected)},
		bson.M{"$set": bson.M{"status": string(next)}},
	)
	if err != nil {
		return false, fmt.Errorf("conditional set status: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *TicketRepository) List(ctx context.Context, filter ports.TicketFilter) ([]domain.ReimbursementTicket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.OwnerID != nil {
		query["owner_id"] = *filter.OwnerID
	}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer cur.Close(ctx)

	var tickets []domain.ReimbursementTicket
	for cur.Next(ctx) {
		var doc ticketDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode ticket: %w", err)
		}
		tickets = append(tickets, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// EnsureIndexes creates the owner and status indexes used by listings.
func (r *TicketRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
