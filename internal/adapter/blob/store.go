package blob

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

// ErrInvalidSignature is returned when a signed URL fails verification or has
// expired.
var ErrInvalidSignature = errors.New("invalid or expired signature")

// Store implements domain.BlobStore on the local filesystem. Files live under
// root/<bucket>/<path>. Public buckets are served directly under baseURL;
// private buckets only through HMAC-signed URLs with an expiry.
type Store struct {
	root    string
	baseURL string
	secret  []byte
}

// Compile-time check: Store implements domain.BlobStore.
var _ domain.BlobStore = (*Store)(nil)

// New creates a filesystem store rooted at dir. baseURL is the external
// prefix under which the HTTP layer serves files (no trailing slash needed).
func New(dir, baseURL string, secret []byte) *Store {
	return &Store{
		root:    dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
	}
}

// Upload writes data to bucket/path and returns the stored path. The path is
// a storage reference, not a URL; private-bucket references are exchanged for
// signed URLs at read time.
func (s *Store) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full, err := s.resolve(bucket, path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("creating blob directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("writing blob: %w", err)
	}
	return path, nil
}

// PublicURL returns the direct URL for a file in a public bucket.
func (s *Store) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, path)
}

// SignedURL returns a URL for a private-bucket file that is valid until the
// TTL elapses. The signature covers the bucket, the path and the expiry
// timestamp, so none of them can be swapped after signing.
func (s *Store) SignedURL(bucket, path string, ttl time.Duration) (string, error) {
	expires := time.Now().Add(ttl).Unix()
	sig := s.sign(bucket, path, expires)
	return fmt.Sprintf("%s/%s/%s?expires=%d&signature=%s",
		s.baseURL, bucket, path, expires, sig), nil
}

// Open returns the file contents for bucket/path, verifying the query
// parameters for private buckets. Public buckets ignore the query.
func (s *Store) Open(bucket, path string, query url.Values) ([]byte, error) {
	if isPrivate(bucket) {
		if err := s.verify(bucket, path, query); err != nil {
			return nil, err
		}
	}

	full, err := s.resolve(bucket, path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("reading blob: %w", err)
	}
	return data, nil
}

// resolve maps bucket/path onto the filesystem. Paths and bucket names whose
// cleaned form climbs out of the bucket directory are treated as missing, so
// a request can never reach files outside the store root.
func (s *Store) resolve(bucket, path string) (string, error) {
	root := filepath.Clean(s.root)
	base := filepath.Join(root, bucket)
	full := filepath.Join(base, filepath.FromSlash(path))

	sep := string(filepath.Separator)
	if !strings.HasPrefix(base, root+sep) || !strings.HasPrefix(full, base+sep) {
		return "", fmt.Errorf("blob %s/%s: %w", bucket, path, os.ErrNotExist)
	}
	return full, nil
}

func (s *Store) verify(bucket, path string, query url.Values) error {
	expires, err := strconv.ParseInt(query.Get("expires"), 10, 64)
	if err != nil {
		return ErrInvalidSignature
	}
	if time.Now().Unix() > expires {
		return ErrInvalidSignature
	}

	want := s.sign(bucket, path, expires)
	got := query.Get("signature")
	if !hmac.Equal([]byte(want), []byte(got)) {
		return ErrInvalidSignature
	}
	return nil
}

func (s *Store) sign(bucket, path string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s/%s:%d", bucket, path, expires)
	return hex.EncodeToString(mac.Sum(nil))
}

func isPrivate(bucket string) bool {
	return bucket == domain.BucketDocuments || bucket == domain.BucketPayments
}
