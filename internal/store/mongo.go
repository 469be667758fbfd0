package store

import (
	"context"
	"fmt"

	"github.com/kiranshivaraju/reviewpulse/internal/config"
	"github.com/kiranshivaraju/reviewpulse/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reviewsCollection = "reviews"

// MongoStore implements the Store interface on a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoClientOptions maps the pool settings onto the driver. The driver has
// no connection lifetime cap, so DATABASE_CONN_MAX_LIFETIME applies to
// Postgres only.
func MongoClientOptions(cfg config.DatabaseConfig) *options.ClientOptions {
	return options.Client().
		ApplyURI(cfg.URL).
		SetMaxPoolSize(uint64(cfg.MaxConns)).
		SetMinPoolSize(uint64(cfg.MinConns)).
		SetMaxConnIdleTime(cfg.ConnMaxIdleTime)
}

// ConnectMongo dials MongoDB, pings it and makes sure the createdAt index exists.
func ConnectMongo(ctx context.Context, cfg config.DatabaseConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, MongoClientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	s := NewMongoStore(client, client.Database(cfg.Name))
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// NewMongoStore creates a MongoStore over db's reviews collection.
func NewMongoStore(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{client: client, collection: db.Collection(reviewsCollection)}
}

// EnsureIndexes is idempotent.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "rating", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create review indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) InsertReview(ctx context.Context, r *models.ReviewRecord) error {
	doc := *r
	if doc.AIRecommendedActions == nil {
		doc.AIRecommendedActions = []string{}
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (s *MongoStore) ListReviews(ctx context.Context, filter ReviewFilter) ([]*models.ReviewRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := s.collection.Find(ctx, mongoFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []*models.ReviewRecord{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

func mongoFilter(f ReviewFilter) bson.M {
	m := bson.M{}
	if f.Rating != 0 {
		m["rating"] = f.Rating
	}
	created := bson.M{}
	if !f.From.IsZero() {
		created["$gte"] = f.From
	}
	if !f.To.IsZero() {
		created["$lte"] = f.To
	}
	if len(created) > 0 {
		m["createdAt"] = created
	}
	return m
}

var _ Store = (*MongoStore)(nil)
