package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type repository struct {
	coll *mongo.Collection
}

func NewKVRepository(collection *mongo.Collection) *repository {
	return &repository{coll: collection}
}

func (r *repository) Get(ctx context.Context, key string) (string, bool, error) {
	const op = "repository.mongo.Get"

	var ent EntryEntity
	err := r.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&ent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	return ent.Value, true, nil
}

func (r *repository) Set(ctx context.Context, key, value string) error {
	const op = "repository.mongo.Set"

	ent := EntryEntity{
		Key:       key,
		Value:     value,
		UpdatedAt: lo.ToPtr(time.Now().UTC()),
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": key}, ent, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) Remove(ctx context.Context, key string) error {
	const op = "repository.mongo.Remove"

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
