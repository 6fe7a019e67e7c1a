package mongo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/jsvalidation/pkg/mongo"
)

type counter struct {
	collection string
	filter     bson.D
	n          int64
	err        error
}

func (c *counter) Count(_ context.Context, collection string, filter bson.D) (int64, error) {
	c.collection = collection
	c.filter = filter
	return c.n, c.err
}

func TestPresenceVerifier_Count(t *testing.T) {
	t.Parallel()

	t.Run("exists", func(t *testing.T) {
		t.Parallel()
		c := &counter{n: 3}
		n, err := mongo.NewPresenceVerifier(c).Count(context.Background(), "users", "email", "a@b.c", "", "")
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.Equal(t, "users", c.collection)
		assert.Equal(t, bson.D{{Key: "email", Value: "a@b.c"}}, c.filter)
	})

	t.Run("ignores object id", func(t *testing.T) {
		t.Parallel()
		c := &counter{}
		hex := "65a1b2c3d4e5f60718293a4b"
		_, err := mongo.NewPresenceVerifier(c).Count(context.Background(), "users", "email", "a@b.c", hex, "id")
		require.NoError(t, err)

		oid, err := bson.ObjectIDFromHex(hex)
		require.NoError(t, err)
		assert.Equal(t, bson.D{
			{Key: "email", Value: "a@b.c"},
			{Key: "_id", Value: bson.D{{Key: "$ne", Value: oid}}},
		}, c.filter)
	})

	t.Run("ignores plain id", func(t *testing.T) {
		t.Parallel()
		c := &counter{}
		_, err := mongo.NewPresenceVerifier(c).Count(context.Background(), "teams", "slug", "acme", "t-1", "code")
		require.NoError(t, err)
		assert.Equal(t, bson.E{Key: "code", Value: bson.D{{Key: "$ne", Value: "t-1"}}}, c.filter[1])
	})

	t.Run("rejects operators", func(t *testing.T) {
		t.Parallel()
		v := mongo.NewPresenceVerifier(&counter{})
		_, err := v.Count(context.Background(), "users", "$where", "1", "", "")
		assert.ErrorIs(t, err, mongo.ErrInvalidCollection)
		_, err = v.Count(context.Background(), "", "email", "1", "", "")
		assert.ErrorIs(t, err, mongo.ErrInvalidCollection)
	})

	t.Run("count error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("timeout")
		_, err := mongo.NewPresenceVerifier(&counter{err: boom}).Count(context.Background(), "users", "email", "x", "", "")
		assert.ErrorIs(t, err, boom)
	})
}
