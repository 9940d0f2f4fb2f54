package repository

import (
	"context"
	"encoding/json"
	"strings"

	"resume-forge/internal/domain"
	"resume-forge/internal/model"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoDocuments stores documents addressed as "<collection>/<id>", so
// "users/<uid>" lands in the users collection with _id = uid.
type MongoDocuments struct {
	db *mongo.Database
}

func NewMongoDocuments(db *mongo.Database) *MongoDocuments {
	return &MongoDocuments{db: db}
}

// ConnectMongo opens a client and returns the named database.
func ConnectMongo(ctx context.Context, uri, database string) (*mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping mongo")
	}
	return client.Database(database), nil
}

func splitKey(key string) (collection, id string, err error) {
	collection, id, ok := strings.Cut(key, "/")
	if !ok || collection == "" || id == "" {
		return "", "", errors.Errorf("malformed document key %q", key)
	}
	return collection, id, nil
}

func (m *MongoDocuments) Set(ctx context.Context, key string, doc model.Document) error {
	collection, id, err := splitKey(key)
	if err != nil {
		return err
	}
	body, err := model.Encode(doc)
	if err != nil {
		return err
	}
	fields := map[string]interface{}{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return errors.Wrap(err, "convert document")
	}
	fields["_id"] = id

	_, err = m.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, fields, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrapf(err, "replace document %s", key)
	}
	return nil
}

func (m *MongoDocuments) Get(ctx context.Context, key string) (model.Document, error) {
	collection, id, err := splitKey(key)
	if err != nil {
		return model.Document{}, err
	}
	opts := options.FindOne().SetProjection(bson.M{"_id": 0})
	raw, err := m.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}, opts).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Document{}, domain.ErrNotFound
		}
		return model.Document{}, errors.Wrapf(err, "find document %s", key)
	}
	body, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return model.Document{}, errors.Wrap(err, "convert document")
	}
	return model.Decode(body)
}

func (m *MongoDocuments) Ping(ctx context.Context) error {
	return m.db.Client().Ping(ctx, readpref.Primary())
}
