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
	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

const collectionActions = "eco_actions"

// ActionRepository implements ports.ActionRepository using MongoDB.
type ActionRepository struct {
	col *mongo.Collection
}

func NewActionRepository(db *mongo.Database) *ActionRepository {
	return &ActionRepository{col: db.Collection(collectionActions)}
}

type mongoAction struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	UserID             string             `bson:"user_id"`
	Category           string             `bson:"category"`
	ActionType         string             `bson:"action_type"`
	CarbonKg           float64            `bson:"carbon_kg"`
	PackagingType      string             `bson:"packaging_type,omitempty"`
	Origin             string             `bson:"origin,omitempty"`
	DistanceKm         float64            `bson:"distance_km"`
	ExpiryDate         *time.Time         `bson:"expiry_date,omitempty"`
	DisposalMethod     string             `bson:"disposal_method"`
	Severity           string             `bson:"severity"`
	EstimatedSavingsKg float64            `bson:"estimated_savings_kg"`
	ReceiptURL         string             `bson:"receipt_url,omitempty"`
	Data               map[string]any     `bson:"data,omitempty"`
	CreatedAt          time.Time          `bson:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at"`
}

func actionToDoc(a *domain.EcoAction) mongoAction {
	return mongoAction{
		UserID:             a.UserID,
		Category:           string(a.Category),
		ActionType:         a.ActionType,
		CarbonKg:           a.CarbonKg,
		PackagingType:      a.PackagingType,
		Origin:             a.Origin,
		DistanceKm:         a.DistanceKm,
		ExpiryDate:         a.ExpiryDate,
		DisposalMethod:     string(a.DisposalMethod),
		Severity:           string(a.Severity),
		EstimatedSavingsKg: a.EstimatedSavingsKg,
		ReceiptURL:         a.ReceiptURL,
		Data:               a.Data,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func (ma mongoAction) toDomain() domain.EcoAction {
	return domain.EcoAction{
		ID:                 ma.ID.Hex(),
		UserID:             ma.UserID,
		Category:           domain.ActionCategory(ma.Category),
		ActionType:         ma.ActionType,
		CarbonKg:           ma.CarbonKg,
		PackagingType:      ma.PackagingType,
		Origin:             ma.Origin,
		DistanceKm:         ma.DistanceKm,
		ExpiryDate:         ma.ExpiryDate,
		DisposalMethod:     domain.DisposalMethod(ma.DisposalMethod),
		Severity:           domain.Severity(ma.Severity),
		EstimatedSavingsKg: ma.EstimatedSavingsKg,
		ReceiptURL:         ma.ReceiptURL,
		Data:               ma.Data,
		CreatedAt:          ma.CreatedAt,
		UpdatedAt:          ma.UpdatedAt,
	}
}

// ownerFilter scopes a query by id and, when non-empty, by user_id.
func ownerFilter(oid primitive.ObjectID, userID string) bson.M {
	filter := bson.M{"_id": oid}
	if userID != "" {
		filter["user_id"] = userID
	}
	return filter
}

func (r *ActionRepository) Create(ctx context.Context, action *domain.EcoAction) (*domain.EcoAction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, actionToDoc(action))
	if err != nil {
		return nil, fmt.Errorf("insert action: %w", err)
	}

	created := *action
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ActionRepository) FindByID(ctx context.Context, id, userID string) (*domain.EcoAction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrActionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAction
	if err := r.col.FindOne(ctx, ownerFilter(oid, userID)).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrActionNotFound
		}
		return nil, fmt.Errorf("find action: %w", err)
	}

	action := ma.toDomain()
	return &action, nil
}

func (r *ActionRepository) ListByUser(ctx context.Context, userID string) ([]domain.EcoAction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer cur.Close(ctx)

	var actions []domain.EcoAction
	for cur.Next(ctx) {
		var ma mongoAction
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode action: %w", err)
		}
		actions = append(actions, ma.toDomain())
	}
	return actions, cur.Err()
}

func (r *ActionRepository) Update(ctx context.Context, action *domain.EcoAction) error {
	oid, err := primitive.ObjectIDFromHex(action.ID)
	if err != nil {
		return domain.ErrActionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := actionToDoc(action)
	doc.UpdatedAt = time.Now().UTC()

	res, err := r.col.ReplaceOne(ctx, ownerFilter(oid, action.UserID), doc)
	if err != nil {
		return fmt.Errorf("update action: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrActionNotFound
	}
	return nil
}

func (r *ActionRepository) Delete(ctx context.Context, id, userID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrActionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, ownerFilter(oid, userID))
	if err != nil {
		return fmt.Errorf("delete action: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrActionNotFound
	}
	return nil
}

func (r *ActionRepository) StatsByUsers(ctx context.Context, userIDs []string) (map[string]ports.UserActionStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": bson.M{"$in": userIDs}}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$user_id",
			"action_count": bson.M{"$sum": 1},
			"total_carbon": bson.M{"$sum": "$carbon_kg"},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}
	defer cur.Close(ctx)

	stats := make(map[string]ports.UserActionStats, len(userIDs))
	for cur.Next(ctx) {
		var row struct {
			UserID      string  `bson:"_id"`
			ActionCount int64   `bson:"action_count"`
			TotalCarbon float64 `bson:"total_carbon"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode stats: %w", err)
		}
		stats[row.UserID] = ports.UserActionStats{
			ActionCount: row.ActionCount,
			TotalCarbon: row.TotalCarbon,
		}
	}
	return stats, cur.Err()
}

// EnsureIndexes creates necessary indexes on the eco_actions collection.
func (r *ActionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
