package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const sessionsCollection = "sessions"

type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
}

var _ DB = (*MongoDB)(nil)

func NewMongoDB(dsn, databaseName string) (*MongoDB, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &MongoDB{client: client, database: client.Database(databaseName)}, nil
}

func (db *MongoDB) InsertSession(ctx context.Context, session *Session) error {
	if _, err := db.database.Collection(sessionsCollection).InsertOne(ctx, session); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (db *MongoDB) GetSession(ctx context.Context, id string) (*Session, error) {
	session := new(Session)
	err := db.database.Collection(sessionsCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return session, nil
}

func (db *MongoDB) DeleteSession(ctx context.Context, id string) error {
	if _, err := db.database.Collection(sessionsCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (db *MongoDB) Close() error {
	return db.client.Disconnect(context.Background())
}
