package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bferrors "github.com/matzehuels/blockfall/pkg/errors"
	"github.com/matzehuels/blockfall/pkg/game"
	"github.com/matzehuels/blockfall/pkg/observability"
)

// MongoConfig holds connection settings for the mongo backend.
type MongoConfig struct {
	URI        string // e.g. mongodb://localhost:27017
	Database   string // e.g. blockfall
	Collection string // e.g. saves
}

// MongoStore keeps one document per slot. Listing fields are stored as
// top-level document fields; the full record is kept as its JSON encoding
// so the unsigned seed round-trips exactly.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	ctxTimeout time.Duration
}

type mongoDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"created_at"`
	Score     int       `bson:"score"`
	Level     int       `bson:"level"`
	Lines     int       `bson:"lines"`
	Status    string    `bson:"status"`
	Record    []byte    `bson:"record,omitempty"`
}

func (d mongoDoc) summary() Summary {
	return Summary{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		Score:     d.Score,
		Level:     d.Level,
		Lines:     d.Lines,
		Status:    game.Status(d.Status),
	}
}

// NewMongoStore connects to MongoDB, pings it and ensures indexes.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "blockfall"
	}
	if cfg.Collection == "" {
		cfg.Collection = "saves"
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "connect to mongo")
	}
	if err := client.Ping(connCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "ping mongo")
	}

	s := &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		ctxTimeout: 5 * time.Second,
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.ctxTimeout)
	defer cancel()

	createdIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("created_at_desc"),
	}
	if _, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{createdIdx}); err != nil {
		return bferrors.Wrap(bferrors.ErrCodeStorage, err, "create mongo indexes")
	}
	return nil
}

func (s *MongoStore) Save(ctx context.Context, rec *Record) (err error) {
	size := 0
	defer func() { observability.Store().OnSave(ctx, BackendMongo, rec.ID, size, err) }()

	if err := bferrors.ValidateSaveID(rec.ID); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	size = len(data)

	doc := mongoDoc{
		ID:        rec.ID,
		Name:      rec.Name,
		CreatedAt: rec.CreatedAt,
		Score:     rec.State.Score,
		Level:     rec.State.Level,
		Lines:     rec.State.Lines,
		Status:    string(rec.State.Status),
		Record:    data,
	}

	ctx, cancel := context.WithTimeout(ctx, s.ctxTimeout)
	defer cancel()
	_, err = s.collection.ReplaceOne(ctx, bson.M{"_id": rec.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return bferrors.Wrap(bferrors.ErrCodeStorage, err, "save to mongo")
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, id string) (rec *Record, err error) {
	start := time.Now()
	defer func() { observability.Store().OnLoad(ctx, BackendMongo, id, time.Since(start), err) }()

	if err := bferrors.ValidateSaveID(id); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.ctxTimeout)
	defer cancel()

	var doc mongoDoc
	err = s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "load from mongo")
	}

	var r Record
	if err := json.Unmarshal(doc.Record, &r); err != nil {
		return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "parse save %s", id)
	}
	return &r, nil
}

func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.ctxTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"record": 0})
	cur, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "list mongo saves")
	}
	defer cur.Close(ctx)

	var out []Summary
	for cur.Next(ctx) {
		var doc mongoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "decode mongo save")
		}
		out = append(out, doc.summary())
	}
	if err := cur.Err(); err != nil {
		return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "iterate mongo saves")
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) (err error) {
	defer func() { observability.Store().OnDelete(ctx, BackendMongo, id, err) }()

	if err := bferrors.ValidateSaveID(id); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.ctxTimeout)
	defer cancel()
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return bferrors.Wrap(bferrors.ErrCodeStorage, err, "delete from mongo")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.ctxTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
