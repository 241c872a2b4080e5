// Package storage is the document-store collaborator used by lead intake.
// Every driver exposes the same two operations: insert a document into a
// named collection and list the collection names that exist.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var storageTracer = otel.Tracer("yt-re.internal.storage")

// Collection names a storage target. Only the collections declared below
// are accepted by the drivers.
type Collection string

const (
	// CollectionLead holds captured lead submissions.
	CollectionLead Collection = "lead"
)

var knownCollections = map[Collection]struct{}{
	CollectionLead: {},
}

// Valid reports whether c is a declared collection.
func (c Collection) Valid() bool {
	_, ok := knownCollections[c]
	return ok
}

func (c Collection) String() string {
	return string(c)
}

// Entity is implemented by records that persist into a fixed collection.
type Entity interface {
	Collection() Collection
}

// Document is a schemaless record as handed to a driver.
type Document map[string]any

// Store persists documents and reports which collections exist.
type Store interface {
	Insert(ctx context.Context, collection Collection, doc Document) (string, error)
	ListCollectionNames(ctx context.Context) ([]string, error)
}

var (
	// ErrUnknownCollection is returned when a driver is asked to write to an undeclared collection.
	ErrUnknownCollection = errors.New("storage: unknown collection")

	// ErrUnknownDriver is returned when STORAGE_DRIVER names no known driver.
	ErrUnknownDriver = errors.New("storage: unknown driver")

	// ErrNilDocument is returned when Insert is called without a document.
	ErrNilDocument = errors.New("storage: document required")
)

// Driver names accepted by STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverDynamo   = "dynamodb"
	DriverRedis    = "redis"
)

func checkInsert(collection Collection, doc Document) error {
	if !collection.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, string(collection))
	}
	if doc == nil {
		return ErrNilDocument
	}
	return nil
}

func startSpan(ctx context.Context, driver, op string, collection Collection) (context.Context, trace.Span) {
	ctx, span := storageTracer.Start(ctx, "storage."+driver+"."+op)
	span.SetAttributes(attribute.String("storage.driver", driver))
	if collection != "" {
		span.SetAttributes(attribute.String("storage.collection", string(collection)))
	}
	return ctx, span
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
