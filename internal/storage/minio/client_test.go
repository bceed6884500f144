package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/hms-console/internal/model"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      bool

	objects map[string][]byte
	putErr  error
	getErr  error

	removeErr error
	lastPut   minioLib.PutObjectOptions
}

func newFakeMinio() *fakeMinio {
	return &fakeMinio{bucketExists: true, objects: map[string][]byte{}}
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}
func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = true
	return f.makeBucketErr
}
func (f *fakeMinio) PutObject(_ context.Context, _ string, name string, r io.Reader, _ int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return minioLib.UploadInfo{}, err
	}
	f.objects[name] = data
	f.lastPut = opts
	return minioLib.UploadInfo{Key: name, Size: int64(len(data))}, nil
}
func (f *fakeMinio) GetObject(_ context.Context, _ string, name string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[name]
	if !ok {
		return io.NopCloser(&errReader{err: minioLib.ErrorResponse{Code: "NoSuchKey"}}), nil
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
func (f *fakeMinio) RemoveObject(_ context.Context, _ string, name string, _ minioLib.RemoveObjectOptions) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.objects, name)
	return nil
}

type errReader struct{ err error }

func (r *errReader) Read([]byte) (int, error) { return 0, r.err }

func TestNewClientWithAPI_BucketExists(t *testing.T) {
	api := newFakeMinio()
	c, err := NewClientWithAPI(context.Background(), api, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", c.bucket)
	assert.False(t, api.madeBucket)
}

func TestNewClientWithAPI_CreateBucket(t *testing.T) {
	api := newFakeMinio()
	api.bucketExists = false
	_, err := NewClientWithAPI(context.Background(), api, "bucket")
	require.NoError(t, err)
	assert.True(t, api.madeBucket)
}

func TestNewClientWithAPI_Errors(t *testing.T) {
	api := newFakeMinio()
	api.bucketExistsErr = errors.New("unreachable")
	_, err := NewClientWithAPI(context.Background(), api, "b")
	require.Error(t, err)

	api = newFakeMinio()
	api.bucketExists = false
	api.makeBucketErr = errors.New("denied")
	_, err = NewClientWithAPI(context.Background(), api, "b")
	require.Error(t, err)
}

func TestClient_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	api := newFakeMinio()
	c, err := NewClientWithAPI(ctx, api, "b")
	require.NoError(t, err)

	_, err = c.Get(ctx, "hms_user")
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, c.Put(ctx, "hms_user", []byte(`{"id":"x"}`)))
	assert.Equal(t, contentTypeJSON, api.lastPut.ContentType)

	got, err := c.Get(ctx, "hms_user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"x"}`, string(got))

	require.NoError(t, c.Delete(ctx, "hms_user"))
	_, err = c.Get(ctx, "hms_user")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestClient_ErrorsWrapped(t *testing.T) {
	ctx := context.Background()
	api := newFakeMinio()
	c, err := NewClientWithAPI(ctx, api, "b")
	require.NoError(t, err)

	api.putErr = errors.New("disk full")
	require.ErrorContains(t, c.Put(ctx, "k", []byte("v")), "failed to upload object")

	api.getErr = errors.New("timeout")
	_, err = c.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get object")
	require.NotErrorIs(t, err, model.ErrNotFound)

	api.getErr = minioLib.ErrorResponse{Code: "NoSuchKey"}
	_, err = c.Get(ctx, "k")
	require.ErrorIs(t, err, model.ErrNotFound)

	api.removeErr = errors.New("denied")
	require.ErrorContains(t, c.Delete(ctx, "k"), "failed to delete object")

	api.removeErr = minioLib.ErrorResponse{Code: "NoSuchKey"}
	require.NoError(t, c.Delete(ctx, "k"))
}
