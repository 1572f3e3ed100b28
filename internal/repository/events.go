package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventDocument is a journal event as stored in MongoDB.
type EventDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp  time.Time          `bson:"timestamp"`
	Kind       string             `bson:"kind"`
	Level      string             `bson:"level"`
	Message    string             `bson:"message"`
	RequestID  string             `bson:"request_id,omitempty"`
	Method     string             `bson:"method,omitempty"`
	Path       string             `bson:"path,omitempty"`
	StatusCode int                `bson:"status_code,omitempty"`
	Duration   int64              `bson:"duration_ms,omitempty"`
	IP         string             `bson:"ip,omitempty"`
	Error      string             `bson:"error,omitempty"`
	OrderID    string             `bson:"order_id,omitempty"`
	SessionID  uint64             `bson:"session_id,omitempty"`
	Fields     map[string]any     `bson:"fields,omitempty"`
}

// EventQueryOptions filters event queries.
type EventQueryOptions struct {
	Kind      string
	OrderID   string
	RequestID string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Skip      int
}

// EventsRepository stores journal events.
type EventsRepository struct {
	collection *mongo.Collection
}

// NewEventsRepository creates a new events repository.
func NewEventsRepository(db *MongoDB) *EventsRepository {
	return &EventsRepository{
		collection: db.Events,
	}
}

func prepare(doc *EventDocument) {
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.Timestamp.IsZero() {
		doc.Timestamp = time.Now()
	}
}

// Create inserts one event.
func (r *EventsRepository) Create(ctx context.Context, doc *EventDocument) error {
	prepare(doc)
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

// CreateMany inserts events in bulk.
func (r *EventsRepository) CreateMany(ctx context.Context, docs []*EventDocument) error {
	if len(docs) == 0 {
		return nil
	}

	batch := make([]any, len(docs))
	for i, doc := range docs {
		prepare(doc)
		batch[i] = doc
	}

	_, err := r.collection.InsertMany(ctx, batch, options.InsertMany().SetOrdered(false))
	return err
}

func (opts EventQueryOptions) filter() bson.M {
	filter := bson.M{}
	if opts.Kind != "" {
		filter["kind"] = opts.Kind
	}
	if opts.OrderID != "" {
		filter["order_id"] = opts.OrderID
	}
	if opts.RequestID != "" {
		filter["request_id"] = opts.RequestID
	}
	if opts.StartTime != nil || opts.EndTime != nil {
		window := bson.M{}
		if opts.StartTime != nil {
			window["$gte"] = *opts.StartTime
		}
		if opts.EndTime != nil {
			window["$lte"] = *opts.EndTime
		}
		filter["timestamp"] = window
	}
	return filter
}

// Query returns matching events, newest first.
func (r *EventsRepository) Query(ctx context.Context, opts EventQueryOptions) ([]*EventDocument, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, opts.filter(), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []*EventDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Count returns the number of matching events.
func (r *EventsRepository) Count(ctx context.Context, opts EventQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, opts.filter())
}
