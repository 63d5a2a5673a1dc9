package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), "http://localhost:8080/files", []byte("test-secret"))
}

func TestStore_UploadAndPublicURL(t *testing.T) {
	store := newTestStore(t)

	ref, err := store.Upload(context.Background(), domain.BucketProperties, "property/p1/cover.jpg", []byte("jpeg"), "image/jpeg")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if ref != "property/p1/cover.jpg" {
		t.Errorf("ref = %q, want the storage path", ref)
	}

	got := store.PublicURL(domain.BucketProperties, ref)
	want := "http://localhost:8080/files/properties/property/p1/cover.jpg"
	if got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}

	data, err := store.Open(domain.BucketProperties, ref, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(data, []byte("jpeg")) {
		t.Errorf("data = %q, want the uploaded bytes", data)
	}
}

func TestStore_SignedURLRoundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ref, err := store.Upload(ctx, domain.BucketDocuments, "ktp/b1.jpg", []byte("ktp"), "image/jpeg")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	signed, err := store.SignedURL(domain.BucketDocuments, ref, time.Hour)
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}

	parsed, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("parsing signed URL: %v", err)
	}

	data, err := store.Open(domain.BucketDocuments, ref, parsed.Query())
	if err != nil {
		t.Fatalf("Open with signature: %v", err)
	}
	if !bytes.Equal(data, []byte("ktp")) {
		t.Errorf("data = %q, want the uploaded bytes", data)
	}
}

func TestStore_PrivateBucketRequiresSignature(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ref, err := store.Upload(ctx, domain.BucketPayments, "proof/p1.jpg", []byte("proof"), "image/jpeg")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if _, err := store.Open(domain.BucketPayments, ref, nil); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("unsigned open err = %v, want ErrInvalidSignature", err)
	}
}

func TestStore_ExpiredSignatureRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ref, err := store.Upload(ctx, domain.BucketDocuments, "ktp/b1.jpg", []byte("ktp"), "image/jpeg")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	expires := time.Now().Add(-time.Minute).Unix()
	query := url.Values{
		"expires":   {fmt.Sprintf("%d", expires)},
		"signature": {store.sign(domain.BucketDocuments, ref, expires)},
	}
	if _, err := store.Open(domain.BucketDocuments, ref, query); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expired open err = %v, want ErrInvalidSignature", err)
	}
}

func TestStore_TamperedSignatureRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ref, err := store.Upload(ctx, domain.BucketDocuments, "ktp/b1.jpg", []byte("ktp"), "image/jpeg")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	signed, err := store.SignedURL(domain.BucketDocuments, ref, time.Hour)
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}
	parsed, _ := url.Parse(signed)

	// Extend the expiry without re-signing.
	query := parsed.Query()
	query.Set("expires", fmt.Sprintf("%d", time.Now().Add(48*time.Hour).Unix()))
	if _, err := store.Open(domain.BucketDocuments, ref, query); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("tampered expiry err = %v, want ErrInvalidSignature", err)
	}

	// Reuse the signature for a different path.
	if _, err := store.Open(domain.BucketDocuments, "ktp/other.jpg", parsed.Query()); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("swapped path err = %v, want ErrInvalidSignature", err)
	}
}

func TestStore_PathTraversalRejected(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("top-secret"), 0o644); err != nil {
		t.Fatalf("writing bait file: %v", err)
	}
	store := New(filepath.Join(dir, "blobs"), "http://localhost:8080/files", []byte("test-secret"))

	for _, path := range []string{"../secret.txt", "../../secret.txt", "a/../../../secret.txt"} {
		data, err := store.Open(domain.BucketProperties, path, nil)
		if err == nil {
			t.Errorf("Open(%q) escaped the bucket and read %q", path, data)
		}
	}

	// Bucket names cannot climb out of the root either.
	if data, err := store.Open("..", "secret.txt", nil); err == nil {
		t.Errorf("Open with traversal bucket read %q", data)
	}

	// Upload is bound the same way.
	if _, err := store.Upload(context.Background(), domain.BucketProperties, "../evil.txt", []byte("x"), "text/plain"); err == nil {
		t.Error("Upload with a traversal path should fail")
	}
	if _, err := os.Stat(filepath.Join(dir, "evil.txt")); err == nil {
		t.Error("Upload wrote outside the blob root")
	}
}

func TestStore_BaseURLTrailingSlashTrimmed(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080/files/", []byte("s"))

	got := store.PublicURL(domain.BucketAvatars, "avatar/u1.jpg")
	if strings.Contains(got, "//avatar") {
		t.Errorf("PublicURL = %q, trailing slash should be trimmed", got)
	}
}
