package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"consultoc-api/internal/clock"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2026, 5, 10, 15, 30, 0, 0, time.UTC)

func TestRender_ProducesPDF(t *testing.T) {
	out, err := Render(Data{
		ValuationID: "3f1c0c1e-0000-4000-8000-000000000001",
		Address:     "Rua das Acácias, 100 - São Paulo",
		Value:       440000,
		GeneratedAt: generatedAt,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "missing PDF header")
	assert.Greater(t, len(out), 500)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "laudo_abc-123.pdf", FileName("abc-123"))
	assert.Equal(t, "laudo_etcpasswd.pdf", FileName("../../etc/passwd"))
	assert.Equal(t, "laudo_sem-id.pdf", FileName("///"))
}

func TestGenerator_DirStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "laudos")
	storage, err := NewDirStorage(dir)
	require.NoError(t, err)

	g := NewGenerator(storage, clock.Stepping(generatedAt, time.Second), zerolog.Nop())
	loc, err := g.Generate(context.Background(), Data{ValuationID: "val-1", Address: "Rua A, 100", Value: 440000})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "laudo_val-1.pdf"), loc)
	content, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))

	_, err = os.Stat(loc + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

type fakeUploader struct {
	input *s3.PutObjectInput
	body  []byte
	out   *manager.UploadOutput
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, in *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.input = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	return f.out, f.err
}

func TestS3Storage_Save(t *testing.T) {
	up := &fakeUploader{out: &manager.UploadOutput{}}
	s := newS3Storage(up, "consultoc-laudos", "laudos")

	loc, err := s.Save(context.Background(), "laudo_val-1.pdf", []byte("%PDF-1.3"))
	require.NoError(t, err)

	assert.Equal(t, "s3://consultoc-laudos/laudos/laudo_val-1.pdf", loc)
	assert.Equal(t, "consultoc-laudos", *up.input.Bucket)
	assert.Equal(t, "laudos/laudo_val-1.pdf", *up.input.Key)
	assert.Equal(t, "application/pdf", *up.input.ContentType)
	assert.Equal(t, []byte("%PDF-1.3"), up.body)
}

func TestS3Storage_UsesUploaderLocation(t *testing.T) {
	up := &fakeUploader{out: &manager.UploadOutput{Location: "https://bucket.s3.amazonaws.com/laudo_x.pdf"}}
	s := newS3Storage(up, "bucket", "")

	loc, err := s.Save(context.Background(), "laudo_x.pdf", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/laudo_x.pdf", loc)
	assert.Equal(t, "laudo_x.pdf", *up.input.Key)
}

func TestGenerator_StorageError(t *testing.T) {
	boom := errors.New("access denied")
	g := NewGenerator(newS3Storage(&fakeUploader{err: boom}, "b", ""), nil, zerolog.Nop())

	_, err := g.Generate(context.Background(), Data{ValuationID: "v", Address: "Rua", Value: 1})
	assert.True(t, errors.Is(err, boom))
}
