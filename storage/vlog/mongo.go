package vlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/indieinfra/reel/config"
)

// MongoStore is the default document store: one collection of vlog
// documents, comments embedded in their parent document.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoStore(cfg *config.MongoStrategy) (*MongoStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo store config is nil")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to reach mongo: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Create(ctx context.Context, title string, mediaType MediaType, mediaPath string) (*Vlog, error) {
	v := &Vlog{
		ID:         primitive.NewObjectID().Hex(),
		Title:      title,
		MediaType:  mediaType,
		MediaPath:  mediaPath,
		UploadDate: time.Now().UTC(),
		Comments:   []Comment{},
	}

	if _, err := s.coll.InsertOne(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to insert vlog: %w", err)
	}

	return v, nil
}

func (s *MongoStore) List(ctx context.Context) ([]Vlog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploadDate", Value: -1}})

	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query vlogs: %w", err)
	}
	defer cursor.Close(ctx)

	vlogs := []Vlog{}
	if err := cursor.All(ctx, &vlogs); err != nil {
		return nil, fmt.Errorf("failed to decode vlogs: %w", err)
	}

	for i := range vlogs {
		normalize(&vlogs[i])
	}

	return vlogs, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Vlog, error) {
	var v Vlog
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load vlog %q: %w", id, err)
	}

	normalize(&v)
	return &v, nil
}

// AddComment appends via $push so concurrent appends to the same vlog
// cannot lose each other's writes.
func (s *MongoStore) AddComment(ctx context.Context, id string, name string, text string) (*Vlog, error) {
	comment := Comment{
		Name: name,
		Text: text,
		Date: time.Now().UTC(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var v Vlog
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": comment}},
		opts,
	).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to append comment to vlog %q: %w", id, err)
	}

	normalize(&v)
	return &v, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
