package audit

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/booking-crm/internal/models"
)

const auditCollection = "audit_logs"

// MongoSink keeps audit entries as documents. Entries have no numeric id
// there; ID is always zero on read.
type MongoSink struct {
	coll *mongo.Collection
}

func NewMongoSink(ctx context.Context, db *mongo.Database) (*MongoSink, error) {
	coll := db.Collection(auditCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "business_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create audit index: %w", err)
	}

	return &MongoSink{coll: coll}, nil
}

func (s *MongoSink) Write(ctx context.Context, entry models.AuditLog) error {
	_, err := s.coll.InsertOne(ctx, entry)
	return err
}

func (s *MongoSink) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	filter := bson.M{"business_id": q.BusinessID}
	if q.Action != "" {
		filter["action"] = q.Action
	}
	if q.Entity != "" {
		filter["entity"] = q.Entity
	}

	created := bson.M{}
	if !q.From.IsZero() {
		created["$gte"] = q.From
	}
	if !q.To.IsZero() {
		created["$lt"] = q.To
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(q.Offset)).
		SetLimit(int64(q.Limit))

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	logs := []models.AuditLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
