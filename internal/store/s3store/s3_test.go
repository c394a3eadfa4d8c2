package s3store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/discochess/uci/internal/codec/noopcodec"
	"github.com/discochess/uci/internal/codec/zstdcodec"
	"github.com/discochess/uci/internal/store"
)

// fakeClient serves objects from a map. Listing returns pageSize keys per
// page in map-independent sorted order.
type fakeClient struct {
	objects  map[string][]byte
	keys     []string
	pageSize int
}

func (f *fakeClient) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeClient) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	start := 0
	if tok := aws.ToString(in.ContinuationToken); tok != "" {
		for i, k := range f.keys {
			if k == tok {
				start = i
			}
		}
	}

	out := &s3.ListObjectsV2Output{}
	for i := start; i < len(f.keys); i++ {
		k := f.keys[i]
		if len(out.Contents) == f.pageSize {
			out.IsTruncated = aws.Bool(true)
			out.NextContinuationToken = aws.String(k)
			break
		}
		if !strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			continue
		}
		out.Contents = append(out.Contents, types.Object{
			Key:  aws.String(k),
			Size: aws.Int64(int64(len(f.objects[k]))),
		})
	}
	return out, nil
}

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"prefix", "prefix/"},
		{"prefix/", "prefix/"},
		{"a/b/c", "a/b/c/"},
		{"a/b/c/", "a/b/c/"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := &Store{}
			if err := WithPrefix(tt.input)(s); err != nil {
				t.Fatalf("WithPrefix() error = %v", err)
			}
			if s.prefix != tt.want {
				t.Errorf("prefix = %q, want %q", s.prefix, tt.want)
			}
		})
	}
}

func TestStore_key(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "transcripts/game.txt.zst"},
		{"data/v1/", "data/v1/transcripts/game.txt.zst"},
	}

	for _, tt := range tests {
		s := &Store{codec: zstdcodec.New(), prefix: tt.prefix}
		if got := s.key("game"); got != tt.want {
			t.Errorf("key(%q) = %q, want %q", "game", got, tt.want)
		}
	}
}

func TestStore_ReadTranscript(t *testing.T) {
	client := &fakeClient{objects: map[string][]byte{
		"logs/transcripts/game.txt": []byte(">uci\n"),
	}}
	s, err := NewWithClient(client, "bucket", noopcodec.New(), WithPrefix("logs"))
	if err != nil {
		t.Fatalf("NewWithClient() error = %v", err)
	}
	defer s.Close()

	got, err := s.ReadTranscript(context.Background(), "game")
	if err != nil {
		t.Fatalf("ReadTranscript() error = %v", err)
	}
	if string(got) != ">uci\n" {
		t.Errorf("ReadTranscript() = %q, want %q", got, ">uci\n")
	}

	if _, err := s.ReadTranscript(context.Background(), "other"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("ReadTranscript(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := s.ReadTranscript(context.Background(), "../game"); !errors.Is(err, store.ErrInvalidName) {
		t.Errorf("ReadTranscript(traversal) error = %v, want ErrInvalidName", err)
	}
}

func TestStore_List(t *testing.T) {
	client := &fakeClient{
		objects: map[string][]byte{
			"transcripts/c.txt":    []byte("ccc"),
			"transcripts/a.txt":    []byte("a"),
			"transcripts/b.txt":    []byte("bb"),
			"transcripts/readme":   []byte("skip"),
			"other/d.txt":          []byte("skip"),
			"transcripts/e.txt.gz": []byte("skip"),
		},
		keys: []string{
			"other/d.txt",
			"transcripts/a.txt",
			"transcripts/b.txt",
			"transcripts/c.txt",
			"transcripts/e.txt.gz",
			"transcripts/readme",
		},
		pageSize: 2,
	}
	s, err := NewWithClient(client, "bucket", noopcodec.New())
	if err != nil {
		t.Fatalf("NewWithClient() error = %v", err)
	}

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []store.Entry{{Name: "a", Size: 1}, {Name: "b", Size: 2}, {Name: "c", Size: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestWithEndpoint_DoesNotPanic(t *testing.T) {
	s := &Store{}
	// AWS config behaviour varies by environment; only the call matters here.
	_ = WithEndpoint("http://localhost:9000")(s)
}
