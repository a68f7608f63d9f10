package repository

import (
	"context"

	"github.com/smartlocker/smartlocker/internal/locker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a MongoDB collection. The locker id is the
// document _id, so key uniqueness comes from the collection itself and the
// conditional writes map onto single atomic driver calls: a duplicate-key
// insert, a filtered FindOneAndUpdate and a DeleteOne whose DeletedCount is
// checked. No read-modify-write cycles happen here.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func (m *MongoStore) Get(ctx context.Context, id string) (*locker.Locker, error) {
	var l locker.Locker
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (m *MongoStore) Put(ctx context.Context, l *locker.Locker) error {
	_, err := m.col.InsertOne(ctx, l)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrPreconditionFailed
		}
		return err
	}
	return nil
}

func (m *MongoStore) Update(ctx context.Context, id string, patch locker.Patch) (*locker.Locker, error) {
	set := bson.M{}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Size != nil {
		set["size"] = *patch.Size
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated locker.Locker
	err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPreconditionFailed
		}
		return nil, err
	}
	return &updated, nil
}

func (m *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPreconditionFailed
	}
	return nil
}

func (m *MongoStore) Scan(ctx context.Context) ([]*locker.Locker, error) {
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*locker.Locker{}
	for cur.Next(ctx) {
		var l locker.Locker
		if err := cur.Decode(&l); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
