package source

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_Open(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.csv"), []byte("phase,normalized_flux\n"), 0o644))

	src := NewLocal(dir)
	assert.Equal(t, filepath.Join(dir, "c.csv"), src.Location("c.csv"))

	rc, err := src.Open(context.Background(), "c.csv")
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "phase,normalized_flux\n", string(data))
}

func TestLocal_OpenMissing(t *testing.T) {
	src := NewLocal(t.TempDir())
	_, err := src.Open(context.Background(), "a.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLocal_OpenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocal(t.TempDir()).Open(ctx, "a.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		raw        string
		bucket     string
		prefix     string
		shouldFail bool
	}{
		{"s3://lc-data", "lc-data", "", false},
		{"s3://lc-data/tess/sector1/", "lc-data", "tess/sector1", false},
		{"http://lc-data/tess", "", "", true},
		{"s3:///tess", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			bucket, prefix, err := ParseS3URL(tt.raw)
			if tt.shouldFail {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.prefix, prefix)
		})
	}
}

type fakeGetter struct {
	objects map[string]string
	err     error
	keys    []string
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3_Open(t *testing.T) {
	getter := &fakeGetter{objects: map[string]string{"tess/c.csv": "phase,normalized_flux\n0,1\n"}}
	src := newS3WithClient(getter, "lc-data", "tess")

	assert.Equal(t, "s3://lc-data/tess/c.csv", src.Location("c.csv"))

	rc, err := src.Open(context.Background(), "c.csv")
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "normalized_flux")
	assert.Equal(t, []string{"tess/c.csv"}, getter.keys)
}

func TestS3_OpenMissing(t *testing.T) {
	src := newS3WithClient(&fakeGetter{}, "lc-data", "")
	_, err := src.Open(context.Background(), "a.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "s3://lc-data/a.csv")
}

func TestS3_OpenOtherError(t *testing.T) {
	src := newS3WithClient(&fakeGetter{err: errors.New("access denied")}, "lc-data", "")
	_, err := src.Open(context.Background(), "a.csv")
	require.Error(t, err)
	assert.False(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "access denied")
}

func TestNew_Local(t *testing.T) {
	dir := t.TempDir()
	src, err := New(context.Background(), &contract.Config{BaseDir: dir})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, src)
	assert.Equal(t, filepath.Join(dir, "x.csv"), src.Location("x.csv"))
}

func TestNew_S3InvalidURL(t *testing.T) {
	_, err := New(context.Background(), &contract.Config{BaseDir: "s3://"})
	assert.Error(t, err)
}
