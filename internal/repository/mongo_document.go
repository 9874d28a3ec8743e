package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tododoc/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDocument is the stored shape of a document. The tree is kept as its
// JSON serialization so both backends share one wire format.
type mongoDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Title     string    `bson:"title"`
	Body      string    `bson:"body"`
	Revision  int       `bson:"revision"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoEvent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	DocumentID string             `bson:"document_id"`
	Revision   int                `bson:"revision"`
	Action     string             `bson:"action"`
	TargetID   string             `bson:"target_id"`
	CreatedAt  time.Time          `bson:"created_at"`
}

// MongoDocumentRepo implements DocumentRepo on the "documents" collection.
type MongoDocumentRepo struct {
	coll   *mongo.Collection
	events *mongo.Collection
}

func NewMongoDocumentRepo(database *mongo.Database) *MongoDocumentRepo {
	return &MongoDocumentRepo{
		coll:   database.Collection("documents"),
		events: database.Collection("document_events"),
	}
}

func (r *MongoDocumentRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create document indexes: %w", err)
	}
	return nil
}

func (r *MongoDocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	body, err := encodeBody(d.Root)
	if err != nil {
		return err
	}
	if d.Revision < 1 {
		d.Revision = 1
	}
	_, err = r.coll.InsertOne(ctx, mongoDocument{
		ID:        d.ID,
		Name:      d.Name,
		Title:     d.Title,
		Body:      body,
		Revision:  d.Revision,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("insert document %q: %w", d.Name, ErrDuplicateName)
	}
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *MongoDocumentRepo) GetByName(ctx context.Context, name string) (*domain.Document, error) {
	var m mongoDocument
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("document %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find document %s: %w", name, err)
	}
	return m.toDomain()
}

func (r *MongoDocumentRepo) List(ctx context.Context) ([]*domain.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cursor.Close(ctx)

	var stored []mongoDocument
	if err := cursor.All(ctx, &stored); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	docs := make([]*domain.Document, 0, len(stored))
	for _, m := range stored {
		d, err := m.toDomain()
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}

func (r *MongoDocumentRepo) Save(ctx context.Context, d *domain.Document, expectedRevision int) error {
	body, err := encodeBody(d.Root)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": d.ID, "revision": expectedRevision},
		bson.M{
			"$set": bson.M{"title": d.Title, "body": body, "updated_at": d.UpdatedAt.UTC()},
			"$inc": bson.M{"revision": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": d.ID})
		if err != nil {
			return fmt.Errorf("check document: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("document %q: %w", d.Name, ErrNotFound)
		}
		return fmt.Errorf("document %q: %w", d.Name, ErrRevisionConflict)
	}
	d.Revision = expectedRevision + 1
	return nil
}

// Delete removes the document and its event history.
func (r *MongoDocumentRepo) Delete(ctx context.Context, name string) error {
	var m mongoDocument
	err := r.coll.FindOneAndDelete(ctx, bson.M{"name": name}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("document %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if _, err := r.events.DeleteMany(ctx, bson.M{"document_id": m.ID}); err != nil {
		return fmt.Errorf("delete document events: %w", err)
	}
	return nil
}

func (m mongoDocument) toDomain() (*domain.Document, error) {
	root, err := decodeBody(m.Body)
	if err != nil {
		return nil, fmt.Errorf("document %q: %w", m.Name, err)
	}
	return &domain.Document{
		ID:        m.ID,
		Name:      m.Name,
		Title:     m.Title,
		Root:      root,
		Revision:  m.Revision,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// MongoEventRepo implements EventRepo on the "document_events" collection.
type MongoEventRepo struct {
	coll *mongo.Collection
}

func NewMongoEventRepo(database *mongo.Database) *MongoEventRepo {
	return &MongoEventRepo{coll: database.Collection("document_events")}
}

func (r *MongoEventRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "document_id", Value: 1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create event indexes: %w", err)
	}
	return nil
}

func (r *MongoEventRepo) Append(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	docs := make([]any, 0, len(events))
	for _, e := range events {
		docs = append(docs, mongoEvent{
			DocumentID: e.DocumentID,
			Revision:   e.Revision,
			Action:     e.Action,
			TargetID:   e.TargetID,
			CreatedAt:  e.CreatedAt.UTC(),
		})
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	return nil
}

func (r *MongoEventRepo) ListByDocument(ctx context.Context, documentID string, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"document_id": documentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cursor.Close(ctx)

	var stored []mongoEvent
	if err := cursor.All(ctx, &stored); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	events := make([]domain.Event, 0, len(stored))
	for _, m := range stored {
		events = append(events, domain.Event{
			DocumentID: m.DocumentID,
			Revision:   m.Revision,
			Action:     m.Action,
			TargetID:   m.TargetID,
			CreatedAt:  m.CreatedAt,
		})
	}
	return events, nil
}
