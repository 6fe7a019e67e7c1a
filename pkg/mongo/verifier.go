package mongo

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Counter counts documents of a collection.
type Counter interface {
	Count(ctx context.Context, collection string, filter bson.D) (int64, error)
}

// DatabaseCounter counts through a *mongo.Database.
type DatabaseCounter struct {
	DB *mongo.Database
}

func (d DatabaseCounter) Count(ctx context.Context, collection string, filter bson.D) (int64, error) {
	return d.DB.Collection(collection).CountDocuments(ctx, filter)
}

// PresenceVerifier answers unique and exists with CountDocuments.
type PresenceVerifier struct {
	counter Counter
}

func NewPresenceVerifier(counter Counter) *PresenceVerifier {
	return &PresenceVerifier{counter: counter}
}

// Count implements validator.PresenceVerifier.
func (p *PresenceVerifier) Count(ctx context.Context, table, column, value, excludeID, idColumn string) (int64, error) {
	filter, err := presenceFilter(table, column, value, excludeID, idColumn)
	if err != nil {
		return 0, err
	}
	n, err := p.counter.Count(ctx, table, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s.%s: %w", table, column, err)
	}
	return n, nil
}

func presenceFilter(collection, field, value, excludeID, idField string) (bson.D, error) {
	if !validName(collection) || !validName(field) {
		return nil, fmt.Errorf("%w: %s.%s", ErrInvalidCollection, collection, field)
	}
	filter := bson.D{{Key: field, Value: value}}
	if excludeID == "" {
		return filter, nil
	}
	if idField == "" || idField == "id" {
		idField = "_id"
	}
	if !validName(idField) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCollection, idField)
	}
	var id any = excludeID
	if oid, err := bson.ObjectIDFromHex(excludeID); err == nil {
		id = oid
	}
	return append(filter, bson.E{Key: idField, Value: bson.D{{Key: "$ne", Value: id}}}), nil
}

// Operators and empty names are never valid.
func validName(name string) bool {
	return name != "" && !strings.HasPrefix(name, "$") && !strings.ContainsRune(name, 0)
}
