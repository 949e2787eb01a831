package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yashrajoria/storefront-client/config"
	apperrors "github.com/yashrajoria/storefront-client/errors"
)

// exerciseStore runs the same contract against every backend
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, KeyAccessToken, "tok"))
	require.NoError(t, s.Set(ctx, KeyUser, `{"id":1}`))

	v, ok, err := s.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	require.NoError(t, s.Set(ctx, KeyAccessToken, "tok2"))
	v, _, _ = s.Get(ctx, KeyAccessToken)
	assert.Equal(t, "tok2", v)

	require.NoError(t, s.Remove(ctx, KeyAccessToken))
	_, ok, err = s.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, ok)

	// removing an absent key is not an error
	require.NoError(t, s.Remove(ctx, KeyAnonymousCart))

	v, ok, _ = s.Get(ctx, KeyUser)
	assert.True(t, ok)
	assert.Equal(t, `{"id":1}`, v)
}

func TestMemory_Contract(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFile_Contract(t *testing.T) {
	exerciseStore(t, NewFile(filepath.Join(t.TempDir(), "nested", "state.json"), nil))
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()

	require.NoError(t, NewFile(path, nil).Set(ctx, KeyAnonymousCart, "[]"))

	v, ok, err := NewFile(path, nil).Get(ctx, KeyAnonymousCart)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestFile_CorruptDocumentRecovers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"anonymous_cart": "[`), 0o600))
	ctx := context.Background()
	f := NewFile(path, nil)

	_, ok, err := f.Get(ctx, KeyAnonymousCart)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.Set(ctx, KeyAnonymousCart, `[{"item_id":1,"quantity":1,"id":1}]`))
	require.NoError(t, f.Set(ctx, KeyAccessToken, "tok"))
	require.NoError(t, f.Remove(ctx, KeyAccessToken))

	v, ok, err := NewFile(path, nil).Get(ctx, KeyAnonymousCart)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"item_id":1,"quantity":1,"id":1}]`, v)

	kept, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, `{"anonymous_cart": "[`, string(kept))
}

func TestFile_CorruptDocumentThenRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	assert.NoError(t, NewFile(path, nil).Remove(context.Background(), KeyUser))
}

func TestRedis_KeyNamespace(t *testing.T) {
	r := NewRedis(nil, "alice", time.Hour)
	assert.Equal(t, "storefront:alice:anonymous_cart", r.getKey(KeyAnonymousCart))
}

// ---- fake dynamodb ----

type fakeDynamo struct {
	items map[string]map[string]types.AttributeValue
	calls int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func pkOf(key map[string]types.AttributeValue) string {
	if s, ok := key["pk"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.calls++
	return &dynamodb.GetItemOutput{Item: f.items[pkOf(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.calls++
	f.items[pkOf(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.calls++
	delete(f.items, pkOf(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestDynamo_Contract(t *testing.T) {
	fake := newFakeDynamo()
	exerciseStore(t, NewDynamo(fake, "storefront-state", "default"))

	_, ok := fake.items["default#user"]
	assert.True(t, ok)
	assert.Greater(t, fake.calls, 0)
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.Config{Storage: "memory"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(ctx, config.Config{Storage: "file", StateFile: filepath.Join(t.TempDir(), "s.json")}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	_, err = Open(ctx, config.Config{Storage: "etcd"}, zap.NewNop())
	assert.ErrorIs(t, err, apperrors.ErrUnknownBackend)
}
