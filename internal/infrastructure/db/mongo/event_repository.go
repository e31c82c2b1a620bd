package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
)

const collectionEvents = "community_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

type mongoEvent struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Description    string             `bson:"description,omitempty"`
	Location       string             `bson:"location,omitempty"`
	Points         uint               `bson:"points"`
	StartsAt       *time.Time         `bson:"starts_at,omitempty"`
	EndsAt         *time.Time         `bson:"ends_at,omitempty"`
	Status         string             `bson:"status"`
	HostID         string             `bson:"host_id"`
	ParticipantIDs []string           `bson:"participant_ids"`
	IsVirtual      bool               `bson:"is_virtual"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func eventToDoc(e *domain.CommunityEvent) mongoEvent {
	return mongoEvent{
		Name:           e.Name,
		Description:    e.Description,
		Location:       e.Location,
		Points:         e.Points,
		StartsAt:       e.StartsAt,
		EndsAt:         e.EndsAt,
		Status:         string(e.Status),
		HostID:         e.HostID,
		ParticipantIDs: e.ParticipantIDs,
		IsVirtual:      e.IsVirtual,
		CreatedAt:      e.CreatedAt,
	}
}

func (me mongoEvent) toDomain() domain.CommunityEvent {
	return domain.CommunityEvent{
		ID:             me.ID.Hex(),
		Name:           me.Name,
		Description:    me.Description,
		Location:       me.Location,
		Points:         me.Points,
		StartsAt:       me.StartsAt,
		EndsAt:         me.EndsAt,
		Status:         domain.EventStatus(me.Status),
		HostID:         me.HostID,
		ParticipantIDs: me.ParticipantIDs,
		IsVirtual:      me.IsVirtual,
		CreatedAt:      me.CreatedAt,
	}
}

func (r *EventRepository) Create(ctx context.Context, event *domain.CommunityEvent) (*domain.CommunityEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, eventToDoc(event))
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	created := *event
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.CommunityEvent, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEvent
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}

	event := me.toDomain()
	return &event, nil
}

// List returns all events except cancelled ones, ordered by start time.
func (r *EventRepository) List(ctx context.Context) ([]domain.CommunityEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"status": bson.M{"$ne": string(domain.EventCancelled)}}
	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var events []domain.CommunityEvent
	for cur.Next(ctx) {
		var me mongoEvent
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, me.toDomain())
	}
	return events, cur.Err()
}

func (r *EventRepository) Update(ctx context.Context, event *domain.CommunityEvent) error {
	oid, err := primitive.ObjectIDFromHex(event.ID)
	if err != nil {
		return domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, eventToDoc(event))
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// AddParticipant appends userID to the roster, skipping duplicates.
func (r *EventRepository) AddParticipant(ctx context.Context, eventID, userID string) error {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$addToSet": bson.M{"participant_ids": userID}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) SetStatus(ctx context.Context, eventID string, status domain.EventStatus) error {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": string(status)}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the community_events collection.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "starts_at", Value: 1}}},
		{Keys: bson.D{{Key: "host_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
