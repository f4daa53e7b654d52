package objectstore

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordedPut struct {
	path        string
	contentType string
	size        string
}

type storedObject struct {
	data        []byte
	contentType string
}

// fakeS3 answers the handful of S3 calls the store makes and serves stored
// objects back on GET.
type fakeS3 struct {
	mu      sync.Mutex
	puts    []recordedPut
	objects map[string]storedObject
	buckets map[string]bool
	failPut bool
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	segments := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
	bucket := segments[0]

	switch {
	case r.Method == http.MethodHead && (len(segments) == 1 || segments[1] == ""):
		if !f.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && len(segments) == 2:
		body, _ := io.ReadAll(r.Body)
		if f.failPut {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		size := r.Header.Get("X-Amz-Decoded-Content-Length")
		if size == "" {
			size = strconv.Itoa(len(body))
		}
		f.puts = append(f.puts, recordedPut{path: r.URL.Path, contentType: r.Header.Get("Content-Type"), size: size})
		if strings.HasPrefix(r.Header.Get("X-Amz-Content-Sha256"), "STREAMING-") {
			body = decodeAWSChunked(body)
		}
		if f.objects == nil {
			f.objects = map[string]storedObject{}
		}
		f.objects[r.URL.Path] = storedObject{data: body, contentType: r.Header.Get("Content-Type")}
		w.Header().Set("ETag", `"9b2cf535f27731c974343645a3985328"`)
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodGet && len(segments) == 2:
		object, ok := f.objects[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", object.contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(object.data)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// decodeAWSChunked strips the aws-chunked framing minio uses for uploads over
// plain HTTP: "<hex size>[;chunk-signature=...]\r\n<data>\r\n" repeated,
// ending with a zero-sized chunk and optional trailers.
func decodeAWSChunked(body []byte) []byte {
	reader := bufio.NewReader(bytes.NewReader(body))
	var out []byte
	for {
		header, err := reader.ReadString('\n')
		if err != nil {
			return out
		}
		sizeField, _, _ := strings.Cut(strings.TrimSpace(header), ";")
		size, err := strconv.ParseInt(sizeField, 16, 64)
		if err != nil || size == 0 {
			return out
		}
		chunk := make([]byte, size)
		if _, err := io.ReadFull(reader, chunk); err != nil {
			return out
		}
		out = append(out, chunk...)
		if _, err := reader.ReadString('\n'); err != nil {
			return out
		}
	}
}

func newTestStore(t *testing.T, fake *fakeS3) *S3Store {
	t.Helper()

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	useSSL := false
	store, err := New(Config{
		Endpoint:      strings.TrimPrefix(server.URL, "http://"),
		Region:        "ap-northeast-1",
		BucketName:    "swatches",
		ExpirationSec: 60,
		UseSSL:        &useSSL,
		AccessKey:     "test-access",
		SecretKey:     "test-secret",
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return store
}

func TestS3Store_Upload(t *testing.T) {
	fake := &fakeS3{}
	store := newTestStore(t, fake)
	data := []byte("not really a png")

	if err := store.Upload(context.Background(), "1700000000000.png", data, "image/png"); err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	if len(fake.puts) != 1 {
		t.Fatalf("expected 1 PUT, got %d", len(fake.puts))
	}
	put := fake.puts[0]
	if put.path != "/swatches/1700000000000.png" {
		t.Errorf("unexpected object path %q", put.path)
	}
	if put.contentType != "image/png" {
		t.Errorf("expected content type image/png, got %q", put.contentType)
	}
	if put.size != strconv.Itoa(len(data)) {
		t.Errorf("expected %d bytes, got %s", len(data), put.size)
	}
}

func TestS3Store_Upload_Failure(t *testing.T) {
	store := newTestStore(t, &fakeS3{failPut: true})

	if err := store.Upload(context.Background(), "a.png", []byte{1}, "image/png"); err == nil {
		t.Fatal("expected error when the service rejects the upload")
	}
}

func TestS3Store_Presign(t *testing.T) {
	store := newTestStore(t, &fakeS3{})

	link, err := store.Presign(context.Background(), "1700000000000.png", 90*time.Second)
	if err != nil {
		t.Fatalf("Presign error: %v", err)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("invalid URL %q: %v", link, err)
	}
	if u.Scheme != "http" {
		t.Errorf("expected http scheme, got %q", u.Scheme)
	}
	if u.Path != "/swatches/1700000000000.png" {
		t.Errorf("unexpected path %q", u.Path)
	}
	query := u.Query()
	if query.Get("X-Amz-Expires") != "90" {
		t.Errorf("expected X-Amz-Expires=90, got %q", query.Get("X-Amz-Expires"))
	}
	if query.Get("X-Amz-Signature") == "" {
		t.Error("expected a signature")
	}
	if !strings.Contains(query.Get("X-Amz-Credential"), "ap-northeast-1") {
		t.Errorf("expected credential scope in configured region, got %q", query.Get("X-Amz-Credential"))
	}
}

func TestS3Store_PresignedLinkServesUploadedBytes(t *testing.T) {
	fake := &fakeS3{}
	store := newTestStore(t, fake)
	ctx := context.Background()
	data := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 1, 2, 3, 4}

	if err := store.Upload(ctx, "1700000000001.png", data, "image/png"); err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	link, err := store.Presign(ctx, "1700000000001.png", time.Minute)
	if err != nil {
		t.Fatalf("Presign error: %v", err)
	}

	resp, err := http.Get(link)
	if err != nil {
		t.Fatalf("GET %s error: %v", link, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected content type image/png, got %q", ct)
	}
	got, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("downloaded bytes %v, want %v", got, data)
	}
}

func TestDecodeAWSChunked(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "signed chunks",
			body: "5;chunk-signature=abc\r\nhello\r\n1;chunk-signature=def\r\n!\r\n0;chunk-signature=ghi\r\n\r\n",
			want: "hello!",
		},
		{
			name: "unsigned with trailer",
			body: "3\r\nabc\r\n0\r\nx-amz-checksum-crc32c:AAAAAA==\r\n\r\n",
			want: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(decodeAWSChunked([]byte(tt.body))); got != tt.want {
				t.Errorf("decodeAWSChunked() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestS3Store_CheckBucket(t *testing.T) {
	store := newTestStore(t, &fakeS3{buckets: map[string]bool{"swatches": true}})
	if err := store.CheckBucket(context.Background()); err != nil {
		t.Fatalf("expected bucket to exist, got %v", err)
	}

	missing := newTestStore(t, &fakeS3{})
	if err := missing.CheckBucket(context.Background()); err == nil {
		t.Fatal("expected error for missing bucket")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{BucketName: "b", ExpirationSec: 60}},
		{name: "seven days", cfg: Config{BucketName: "b", ExpirationSec: 604800}},
		{name: "missing bucket", cfg: Config{ExpirationSec: 60}, wantErr: true},
		{name: "zero expiration", cfg: Config{BucketName: "b"}, wantErr: true},
		{name: "too long", cfg: Config{BucketName: "b", ExpirationSec: 604801}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	if cfg.endpoint() != defaultEndpoint {
		t.Errorf("expected endpoint %q, got %q", defaultEndpoint, cfg.endpoint())
	}
	if cfg.region() != defaultRegion {
		t.Errorf("expected region %q, got %q", defaultRegion, cfg.region())
	}
	if !cfg.secure() {
		t.Error("expected TLS by default")
	}
}
