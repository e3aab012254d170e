package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"github.com/insurly/autoquote/internal/core"
)

type QuoteRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewQuoteRepo(db *mongodrv.Database, opTimeout time.Duration) *QuoteRepoMongo {
	return &QuoteRepoMongo{
		coll:      db.Collection(ColQuotes),
		opTimeout: opTimeout,
	}
}

func (repo *QuoteRepoMongo) Save(ctx context.Context, q core.Quote) (core.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	doc := toQuoteDoc(q)
	_, err := repo.coll.InsertOne(ctx, doc)
	if err != nil {
		// map dup key -> core.ErrConflict
		var we mongodrv.WriteException
		if errors.As(err, &we) {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					return core.Quote{}, core.ErrConflict
				}
			}
		}
		return core.Quote{}, fmt.Errorf("quotes.insert: %w", err)
	}
	return q, nil
}

func (repo *QuoteRepoMongo) FindByID(ctx context.Context, id string) (core.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	var doc QuoteDoc
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Quote{}, core.ErrQuoteNotFound
		}
		return core.Quote{}, fmt.Errorf("quotes.findOne: %w", err)
	}

	q, err := fromQuoteDoc(doc)
	if err != nil {
		return core.Quote{}, fmt.Errorf("quotes.decode: %w", err)
	}
	return q, nil
}

func (repo *QuoteRepoMongo) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	res, err := repo.coll.DeleteMany(ctx, bson.M{"valid_until": bson.M{"$lt": before}})
	if err != nil {
		return 0, fmt.Errorf("quotes.deleteMany: %w", err)
	}
	return int(res.DeletedCount), nil
}
