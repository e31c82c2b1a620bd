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

const collectionReminders = "reminders"

// ReminderRepository implements ports.ReminderRepository using MongoDB.
type ReminderRepository struct {
	col *mongo.Collection
}

func NewReminderRepository(db *mongo.Database) *ReminderRepository {
	return &ReminderRepository{col: db.Collection(collectionReminders)}
}

type mongoReminder struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ActionID  string             `bson:"action_id"`
	Message   string             `bson:"message"`
	DueDate   time.Time          `bson:"due_date"`
	Severity  string             `bson:"severity"`
	Delivered bool               `bson:"delivered"`
	CreatedAt time.Time          `bson:"created_at"`
}

func reminderToDoc(rem *domain.Reminder) mongoReminder {
	return mongoReminder{
		UserID:    rem.UserID,
		ActionID:  rem.ActionID,
		Message:   rem.Message,
		DueDate:   rem.DueDate,
		Severity:  string(rem.Severity),
		Delivered: rem.Delivered,
		CreatedAt: rem.CreatedAt,
	}
}

func (mr mongoReminder) toDomain() domain.Reminder {
	return domain.Reminder{
		ID:        mr.ID.Hex(),
		UserID:    mr.UserID,
		ActionID:  mr.ActionID,
		Message:   mr.Message,
		DueDate:   mr.DueDate,
		Severity:  domain.Severity(mr.Severity),
		Delivered: mr.Delivered,
		CreatedAt: mr.CreatedAt,
	}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) (*domain.Reminder, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, reminderToDoc(reminder))
	if err != nil {
		return nil, fmt.Errorf("insert reminder: %w", err)
	}

	created := *reminder
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ReminderRepository) FindByID(ctx context.Context, id, userID string) (*domain.Reminder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReminderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoReminder
	if err := r.col.FindOne(ctx, ownerFilter(oid, userID)).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReminderNotFound
		}
		return nil, fmt.Errorf("find reminder: %w", err)
	}

	reminder := mr.toDomain()
	return &reminder, nil
}

func (r *ReminderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Reminder, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *ReminderRepository) ListPendingByUser(ctx context.Context, userID string) ([]domain.Reminder, error) {
	return r.list(ctx, bson.M{"user_id": userID, "delivered": false})
}

// ListDue returns every undelivered reminder whose due date has passed,
// across all users. Used by the dispatcher.
func (r *ReminderRepository) ListDue(ctx context.Context, now time.Time) ([]domain.Reminder, error) {
	return r.list(ctx, bson.M{"delivered": false, "due_date": bson.M{"$lte": now}})
}

func (r *ReminderRepository) list(ctx context.Context, filter bson.M) ([]domain.Reminder, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer cur.Close(ctx)

	var reminders []domain.Reminder
	for cur.Next(ctx) {
		var mr mongoReminder
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode reminder: %w", err)
		}
		reminders = append(reminders, mr.toDomain())
	}
	return reminders, cur.Err()
}

func (r *ReminderRepository) Update(ctx context.Context, reminder *domain.Reminder) error {
	oid, err := primitive.ObjectIDFromHex(reminder.ID)
	if err != nil {
		return domain.ErrReminderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := reminderToDoc(reminder)
	res, err := r.col.ReplaceOne(ctx, ownerFilter(oid, reminder.UserID), doc)
	if err != nil {
		return fmt.Errorf("update reminder: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func (r *ReminderRepository) Delete(ctx context.Context, id, userID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReminderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, ownerFilter(oid, userID))
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func (r *ReminderRepository) MarkDelivered(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReminderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"delivered": true}})
	if err != nil {
		return fmt.Errorf("mark delivered: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the reminders collection.
func (r *ReminderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "due_date", Value: 1}}},
		{Keys: bson.D{{Key: "delivered", Value: 1}, {Key: "due_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
