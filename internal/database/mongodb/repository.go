// Copyright (c) 2025 Vidora
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vidora/vidora-api/internal/database/interfaces"
	"github.com/vidora/vidora-api/internal/pkg/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository implements the Repository interface for MongoDB
type MongoRepository struct {
	client   *mongo.Client
	database *mongo.Database
	dbName   string
}

// MongoQueryResult implements QueryResult for MongoDB
type MongoQueryResult struct {
	cursor *mongo.Cursor
	ctx    context.Context
	err    error
}

// MongoSingleResult implements SingleResult for MongoDB
type MongoSingleResult struct {
	result   *mongo.SingleResult
	err      error
	noResult bool
}

// NewMongoRepository creates a new MongoDB repository
func NewMongoRepository(ctx context.Context, config *interfaces.MongoDBConfig, databaseName string) (*MongoRepository, error) {
	uri := buildConnectionURI(config)

	clientOptions := options.Client().ApplyURI(uri)

	if config.MaxPoolSize > 0 {
		clientOptions.SetMaxPoolSize(uint64(config.MaxPoolSize))
	}

	if config.MinPoolSize > 0 {
		clientOptions.SetMinPoolSize(uint64(config.MinPoolSize))
	}

	if config.ConnectTimeout > 0 {
		clientOptions.SetConnectTimeout(time.Duration(config.ConnectTimeout) * time.Second)
	}

	if config.SocketTimeout > 0 {
		clientOptions.SetSocketTimeout(time.Duration(config.SocketTimeout) * time.Second)
	}

	if config.MaxIdleTime > 0 {
		clientOptions.SetMaxConnIdleTime(time.Duration(config.MaxIdleTime) * time.Second)
	}

	if config.ServerSelectionTimeout > 0 {
		clientOptions.SetServerSelectionTimeout(time.Duration(config.ServerSelectionTimeout) * time.Second)
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(databaseName)

	return &MongoRepository{
		client:   client,
		database: database,
		dbName:   databaseName,
	}, nil
}

// buildConnectionURI builds MongoDB connection URI from config
func buildConnectionURI(config *interfaces.MongoDBConfig) string {
	uri := "mongodb://"

	if config.Username != "" && config.Password != "" {
		uri += fmt.Sprintf("%s:%s@", config.Username, config.Password)
	}

	uri += fmt.Sprintf("%s:%d", config.Host, config.Port)

	if config.AuthDatabase != "" {
		uri += fmt.Sprintf("/?authSource=%s", config.AuthDatabase)
	}

	if config.ReplicaSet != "" {
		if config.AuthDatabase != "" {
			uri += fmt.Sprintf("&replicaSet=%s", config.ReplicaSet)
		} else {
			uri += fmt.Sprintf("/?replicaSet=%s", config.ReplicaSet)
		}
	}

	if config.SSL {
		if config.AuthDatabase != "" || config.ReplicaSet != "" {
			uri += "&ssl=true"
		} else {
			uri += "/?ssl=true"
		}
	}

	return uri
}

// wrapUpdateData wraps plain field maps in $set so callers can pass either
// operator documents or clean field updates.
func wrapUpdateData(data interface{}) interface{} {
	if dataMap, ok := data.(map[string]interface{}); ok {
		hasOperators := false
		for key := range dataMap {
			if strings.HasPrefix(key, "$") {
				hasOperators = true
				break
			}
		}
		if !hasOperators {
			return map[string]interface{}{"$set": dataMap}
		}
	}
	return data
}

// Save stores a single document
func (r *MongoRepository) Save(ctx context.Context, collectionName string, data interface{}) <-chan interfaces.RepositoryResult {
	result := make(chan interfaces.RepositoryResult)

	go func() {
		defer close(result)

		collection := r.database.Collection(collectionName)

		insertResult, err := collection.InsertOne(ctx, data)
		if err != nil {
			log.Error("MongoDB Save error: %s", err.Error())
			result <- interfaces.RepositoryResult{Error: err}
			return
		}

		result <- interfaces.RepositoryResult{Result: insertResult.InsertedID}
	}()

	return result
}

// Find retrieves multiple documents
func (r *MongoRepository) Find(ctx context.Context, collectionName string, filter interface{}, opts *interfaces.FindOptions) <-chan interfaces.QueryResult {
	result := make(chan interfaces.QueryResult)

	go func() {
		defer close(result)

		collection := r.database.Collection(collectionName)

		findOptions := options.Find()

		if opts != nil {
			if opts.Limit != nil {
				findOptions.SetLimit(*opts.Limit)
			}
			if opts.Skip != nil {
				findOptions.SetSkip(*opts.Skip)
			}
			if opts.Sort != nil {
				findOptions.SetSort(opts.Sort)
			}
			if opts.Select != nil {
				findOptions.SetProjection(opts.Select)
			}
		}

		cursor, err := collection.Find(ctx, filter, findOptions)
		if err != nil {
			log.Error("MongoDB Find error: %s", err.Error())
			result <- &MongoQueryResult{err: err}
			return
		}

		result <- &MongoQueryResult{cursor: cursor, ctx: ctx}
	}()

	return result
}

// FindOne retrieves a single document
func (r *MongoRepository) FindOne(ctx context.Context, collectionName string, filter interface{}) <-chan interfaces.SingleResult {
	result := make(chan interfaces.SingleResult)

	go func() {
		defer close(result)

		collection := r.database.Collection(collectionName)

		singleResult := collection.FindOne(ctx, filter)
		err := singleResult.Err()

		if err != nil {
			if err == mongo.ErrNoDocuments {
				result <- &MongoSingleResult{result: singleResult, noResult: true}
				return
			}
			log.Error("MongoDB FindOne error: %s", err.Error())
			result <- &MongoSingleResult{err: err}
			return
		}

		result <- &MongoSingleResult{result: singleResult}
	}()

	return result
}

// Update updates a single document matching the filter. The result carries
// the matched-document count so callers can detect conditional updates that
// matched nothing.
func (r *MongoRepository) Update(ctx context.Context, collectionName string, filter interface{}, data interface{}, opts *interfaces.UpdateOptions) <-chan interfaces.RepositoryResult {
	result := make(chan interfaces.RepositoryResult)

	go func() {
		defer close(result)

		collection := r.database.Collection(collectionName)

		updateData := wrapUpdateData(data)

		mongoOpts := options.Update()
		if opts != nil && opts.Upsert != nil {
			mongoOpts.SetUpsert(*opts.Upsert)
		}

		updateResult, err := collection.UpdateOne(ctx, filter, updateData, mongoOpts)
		if err != nil {
			log.Error("MongoDB Update error: %s", err.Error())
			result <- interfaces.RepositoryResult{Error: err}
			return
		}

		result <- interfaces.RepositoryResult{Result: updateResult.MatchedCount}
	}()

	return result
}

// UpdateMany updates multiple documents matching the filter
func (r *MongoRepository) UpdateMany(ctx context.Context, collectionName string, filter interface{}, data interface{}, opts *interfaces.UpdateOptions) <-chan interfaces.RepositoryResult {
	result := make(chan interfaces.RepositoryResult)

	go func() {
		defer close(result)

		collection := r.database.Collection(collectionName)

		updateData := wrapUpdateData(data)

		mongoOpts := options.Update()
		if opts != nil && opts.Upsert != nil {
			mongoOpts.SetUpsert(*opts.Upsert)
		}

		updateResult, err := collection.UpdateMany(ctx, filter, updateData, mongoOpts)
		if err != nil {
			log.Error("MongoDB UpdateMany error: %s", err.Error())
			result <- interfaces.RepositoryResult{Error: err}
			return
		}

		result <- interfaces.RepositoryResult{Result: updateResult.MatchedCount}
	}()

	return result
}

// Delete deletes documents matching the filter
func (r *MongoRepository) Delete(ctx context.Context, collectionName string, filter interface{}) <-chan interfaces.RepositoryResult {
	result := make(chan interfaces.RepositoryResult)

	go func() {
		defer close(result)

		collection := r.database.Collection(collectionName)

		deleteResult, err := collection.DeleteMany(ctx, filter)
		if err != nil {
			log.Error("MongoDB Delete error: %s", err.Error())
			result <- interfaces.RepositoryResult{Error: err}
			return
		}

		result <- interfaces.RepositoryResult{Result: deleteResult.DeletedCount}
	}()

	return result
}

// Count counts documents matching filter
func (r *MongoRepository) Count(ctx context.Context, collectionName string, filter interface{}) <-chan interfaces.CountResult {
	result := make(chan interfaces.CountResult)

	go func() {
		defer close(result)

		collection := r.database.Collection(collectionName)

		count, err := collection.CountDocuments(ctx, filter)
		if err != nil {
			log.Error("MongoDB Count error: %s", err.Error())
			result <- interfaces.CountResult{Error: err}
			return
		}

		result <- interfaces.CountResult{Count: count}
	}()

	return result
}

// UpdateFields updates specific fields using clean syntax (no $set operators)
func (r *MongoRepository) UpdateFields(ctx context.Context, collectionName string, filter interface{}, updates map[string]interface{}) <-chan interfaces.RepositoryResult {
	result := make(chan interfaces.RepositoryResult)

	go func() {
		defer close(result)

		collection := r.database.Collection(collectionName)

		data := map[string]interface{}{
			"$set": updates,
		}

		updateResult, err := collection.UpdateMany(ctx, filter, data)
		if err != nil {
			log.Error("MongoDB UpdateFields error: %s", err.Error())
			result <- interfaces.RepositoryResult{Error: err}
			return
		}

		result <- interfaces.RepositoryResult{Result: updateResult.MatchedCount}
	}()

	return result
}

// IncrementFields increments numeric fields using clean syntax (no $inc operators)
func (r *MongoRepository) IncrementFields(ctx context.Context, collectionName string, filter interface{}, increments map[string]interface{}) <-chan interfaces.RepositoryResult {
	result := make(chan interfaces.RepositoryResult)

	go func() {
		defer close(result)

		collection := r.database.Collection(collectionName)

		data := map[string]interface{}{
			"$inc": increments,
		}

		updateResult, err := collection.UpdateMany(ctx, filter, data)
		if err != nil {
			log.Error("MongoDB IncrementFields error: %s", err.Error())
			result <- interfaces.RepositoryResult{Error: err}
			return
		}

		result <- interfaces.RepositoryResult{Result: updateResult.MatchedCount}
	}()

	return result
}

// CreateIndex creates indexes
func (r *MongoRepository) CreateIndex(ctx context.Context, collectionName string, indexes map[string]interface{}) <-chan error {
	result := make(chan error)

	go func() {
		defer close(result)

		collection := r.database.Collection(collectionName)

		var indexModels []mongo.IndexModel

		for key, value := range indexes {
			index := mongo.IndexModel{
				Keys: bson.M{key: value},
			}
			indexModels = append(indexModels, index)
		}

		_, err := collection.Indexes().CreateMany(ctx, indexModels)
		result <- err
	}()

	return result
}

// Ping tests the database connection
func (r *MongoRepository) Ping(ctx context.Context) <-chan error {
	result := make(chan error)

	go func() {
		defer close(result)
		result <- r.client.Ping(ctx, nil)
	}()

	return result
}

// Close closes the database connection
func (r *MongoRepository) Close() error {
	return r.client.Disconnect(context.Background())
}

// Client returns the underlying mongo.Client.
// This is useful for administrative operations in tests, like dropping a database.
func (r *MongoRepository) Client() *mongo.Client {
	return r.client
}

// MongoQueryResult implementation
func (r *MongoQueryResult) Next() bool {
	if r.cursor == nil {
		return false
	}
	return r.cursor.Next(r.ctx)
}

func (r *MongoQueryResult) Decode(v interface{}) error {
	if r.cursor == nil {
		return fmt.Errorf("cursor is nil")
	}
	return r.cursor.Decode(v)
}

func (r *MongoQueryResult) Close() {
	if r.cursor != nil {
		r.cursor.Close(r.ctx)
	}
}

func (r *MongoQueryResult) Error() error {
	return r.err
}

// MongoSingleResult implementation
func (r *MongoSingleResult) Decode(v interface{}) error {
	if r.result == nil {
		return fmt.Errorf("result is nil")
	}
	// Normalize backend-specific no-docs error to interfaces.ErrNoDocuments
	if err := r.result.Decode(v); err != nil {
		if err == mongo.ErrNoDocuments {
			r.noResult = true
			return interfaces.ErrNoDocuments
		}
		return err
	}
	return nil
}

func (r *MongoSingleResult) Error() error {
	if r.noResult {
		return interfaces.ErrNoDocuments
	}
	return r.err
}

func (r *MongoSingleResult) NoResult() bool {
	return r.noResult
}
