package interfaces

import (
	"context"
	"time"
)

// Repository defines the collection-style interface for document database
// operations. Filters and update documents are operator maps in the store's
// native syntax ($eq implied for plain fields, $inc / $addToSet / $pull for
// atomic field mutations).
type Repository interface {
	// Basic CRUD operations
	Save(ctx context.Context, collectionName string, data interface{}) <-chan RepositoryResult
	Find(ctx context.Context, collectionName string, filter interface{}, opts *FindOptions) <-chan QueryResult
	FindOne(ctx context.Context, collectionName string, filter interface{}) <-chan SingleResult
	Update(ctx context.Context, collectionName string, filter interface{}, data interface{}, opts *UpdateOptions) <-chan RepositoryResult
	UpdateMany(ctx context.Context, collectionName string, filter interface{}, data interface{}, opts *UpdateOptions) <-chan RepositoryResult
	Delete(ctx context.Context, collectionName string, filter interface{}) <-chan RepositoryResult

	// Aggregation operations
	Count(ctx context.Context, collectionName string, filter interface{}) <-chan CountResult

	// Clean abstraction methods for common atomic operations
	UpdateFields(ctx context.Context, collectionName string, filter interface{}, updates map[string]interface{}) <-chan RepositoryResult
	IncrementFields(ctx context.Context, collectionName string, filter interface{}, increments map[string]interface{}) <-chan RepositoryResult

	// Index operations
	CreateIndex(ctx context.Context, collectionName string, indexes map[string]interface{}) <-chan error

	// Connection management
	Ping(ctx context.Context) <-chan error
	Close() error
}

// FindOptions represents options for find operations
type FindOptions struct {
	Limit  *int64
	Skip   *int64
	Sort   map[string]int
	Select map[string]int
}

// UpdateOptions represents options for update operations
type UpdateOptions struct {
	Upsert *bool
}

// RepositoryResult represents the result of a repository operation.
// For Update operations, Result carries the matched-document count so
// callers can implement atomic conditional toggles.
type RepositoryResult struct {
	Result interface{}
	Error  error
}

// MatchedCount extracts the matched-document count from an update result.
func (r RepositoryResult) MatchedCount() int64 {
	if n, ok := r.Result.(int64); ok {
		return n
	}
	return 0
}

// DeletedCount extracts the deleted-document count from a delete result.
func (r RepositoryResult) DeletedCount() int64 {
	if n, ok := r.Result.(int64); ok {
		return n
	}
	return 0
}

// QueryResult represents a query result cursor
type QueryResult interface {
	Next() bool
	Decode(v interface{}) error
	Close()
	Error() error
}

// SingleResult represents a single document result
type SingleResult interface {
	Decode(v interface{}) error
	Error() error
	NoResult() bool
}

// CountResult represents the result of a count operation
type CountResult struct {
	Count int64
	Error error
}

// Common errors
var (
	ErrNoDocuments      = NewRepositoryError("no documents found", "NOT_FOUND")
	ErrDuplicateKey     = NewRepositoryError("duplicate key error", "DUPLICATE_KEY")
	ErrInvalidFilter    = NewRepositoryError("invalid filter", "INVALID_FILTER")
	ErrConnectionFailed = NewRepositoryError("database connection failed", "CONNECTION_FAILED")
)

// RepositoryError represents a repository specific error
type RepositoryError struct {
	Message string
	Code    string
	Time    time.Time
}

func (e *RepositoryError) Error() string {
	return e.Message
}

// NewRepositoryError creates a new repository error
func NewRepositoryError(message, code string) *RepositoryError {
	return &RepositoryError{
		Message: message,
		Code:    code,
		Time:    time.Now(),
	}
}
