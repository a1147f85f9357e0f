package table

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"id-reconciler/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLocalSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink, err := NewLocalSink(dir)
	require.NoError(t, err)

	require.NoError(t, Save(context.Background(), sink, NameSummary, func(w io.Writer) error {
		_, err := io.WriteString(w, "namespace\tcount\tpercentage\n")
		return err
	}))

	data, err := os.ReadFile(filepath.Join(dir, NameSummary))
	require.NoError(t, err)
	assert.Equal(t, "namespace\tcount\tpercentage\n", string(data))

	rc, err := sink.Open(context.Background(), NameSummary)
	require.NoError(t, err)
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	assert.Equal(t, data, got)

	// Only the final file remains, no temporary leftovers.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSave_RenderFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewLocalSink(dir)
	require.NoError(t, err)

	err = Save(context.Background(), sink, NameAnnotated, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("boom")
	})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, NameAnnotated))
	assert.True(t, os.IsNotExist(statErr))
}

func TestObjectSink(t *testing.T) {
	client := new(mocks.Client)
	sink := &ObjectSink{Client: client, Bucket: "runs", Prefix: "/2024/"}

	client.On("PutObject", mock.Anything, "runs", "2024/classification.tsv", mock.Anything, int64(5), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
		return o.ContentType == "text/tab-separated-values"
	})).Return(minio.UploadInfo{}, nil)
	client.On("GetObject", mock.Anything, "runs", "2024/classification.tsv", minio.GetObjectOptions{}).
		Return(io.NopCloser(bytes.NewReader([]byte("hello"))), nil)

	require.NoError(t, sink.Write(context.Background(), NameClassification, []byte("hello")))
	assert.Equal(t, "s3://runs/2024/classification.tsv", sink.Location(NameClassification))

	rc, err := sink.Open(context.Background(), NameClassification)
	require.NoError(t, err)
	got, _ := io.ReadAll(rc)
	assert.Equal(t, "hello", string(got))
	client.AssertExpectations(t)
}

func TestObjectSink_UploadError(t *testing.T) {
	client := new(mocks.Client)
	sink := &ObjectSink{Client: client, Bucket: "runs"}
	client.On("PutObject", mock.Anything, "runs", NameSummary, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	err := Save(context.Background(), sink, NameSummary, func(w io.Writer) error { return nil })
	assert.ErrorContains(t, err, "s3://runs/summary.tsv")
}
