package repository

import (
	"context"

	"github.com/alexanderramin/tododoc/internal/db"
	"go.mongodb.org/mongo-driver/mongo"
)

// SQLiteStore runs each unit of work in a SQLite transaction.
type SQLiteStore struct {
	uow db.UnitOfWork
}

func NewSQLiteStore(uow db.UnitOfWork) *SQLiteStore {
	return &SQLiteStore{uow: uow}
}

func (s *SQLiteStore) WithinTx(ctx context.Context, fn func(ctx context.Context, docs DocumentRepo, events EventRepo) error) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, NewSQLiteDocumentRepo(tx), NewSQLiteEventRepo(tx))
	})
}

// MongoStore hands out collection-backed repos. There is no multi-document
// transaction; Save's revision filter keeps concurrent writers apart.
type MongoStore struct {
	docs   *MongoDocumentRepo
	events *MongoEventRepo
}

func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{
		docs:   NewMongoDocumentRepo(database),
		events: NewMongoEventRepo(database),
	}
}

// EnsureIndexes creates the unique name index and the event lookup index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	if err := s.docs.EnsureIndexes(ctx); err != nil {
		return err
	}
	return s.events.EnsureIndexes(ctx)
}

func (s *MongoStore) WithinTx(ctx context.Context, fn func(ctx context.Context, docs DocumentRepo, events EventRepo) error) error {
	return fn(ctx, s.docs, s.events)
}
