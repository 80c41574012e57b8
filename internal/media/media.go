// Package media stores menu item images uploaded through the admin API.
//
// Files are written to a single flat directory and served back under the
// /uploads/ URL prefix. Content type is determined by sniffing the bytes,
// never by trusting the client-supplied file name or header.
package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// URLPrefix is the public path under which stored images are served.
const URLPrefix = "/uploads/"

// DefaultMaxBytes caps an uploaded image when Store.MaxBytes is zero.
const DefaultMaxBytes int64 = 5 << 20

var (
	// ErrUnsupportedImage is returned for uploads that are not JPEG, PNG,
	// WebP or GIF images.
	ErrUnsupportedImage = errors.New("unsupported image type")
	// ErrImageTooLarge is returned for uploads above the configured limit.
	ErrImageTooLarge = errors.New("image too large")
	// ErrInvalidName is returned by Remove for names that are not plain
	// file names.
	ErrInvalidName = errors.New("invalid image name")
)

var allowed = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// Store writes images into Dir.
type Store struct {
	Dir      string
	MaxBytes int64

	now func() time.Time
}

// NewStore returns a Store rooted at dir, creating the directory if needed.
func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir, MaxBytes: maxBytes, now: time.Now}, nil
}

func (s *Store) limit() int64 {
	if s.MaxBytes > 0 {
		return s.MaxBytes
	}
	return DefaultMaxBytes
}

// Save validates and stores an uploaded image and returns the generated file
// name (<unix-nanos>-<uuid><ext>).
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.limit() {
		return "", ErrImageTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return s.write(f)
}

func (s *Store) write(r io.ReadSeeker) (string, error) {
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("detect image type: %w", err)
	}
	if !mimetype.EqualsAny(mt.String(), allowed...) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	name := strconv.FormatInt(now().UnixNano(), 10) + "-" + uuid.NewString() + mt.Extension()

	dst, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	n, err := io.Copy(dst, io.LimitReader(r, s.limit()+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > s.limit() {
		err = ErrImageTooLarge
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.Dir, name))
		return "", err
	}
	return name, nil
}

// Remove deletes a stored image. Missing files are not an error.
func (s *Store) Remove(name string) error {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return ErrInvalidName
	}
	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// URL returns the public URL for a stored image name. References that are
// already absolute URLs or paths are returned unchanged.
func URL(ref string) string {
	if ref == "" || strings.Contains(ref, "://") || strings.HasPrefix(ref, "/") {
		return ref
	}
	return URLPrefix + ref
}

// LocalName reports the stored file name for an image reference, and whether
// the reference names a file written by Save. Hand-typed names such as
// "manti.jpg" are never reported, so deleting a menu item cannot remove a
// file it does not own.
func LocalName(ref string) (string, bool) {
	ref = strings.TrimPrefix(ref, URLPrefix)
	if !isGenerated(ref) {
		return "", false
	}
	return ref, true
}

// isGenerated reports whether name has the <unix-nanos>-<uuid><ext> shape
// produced by Save.
func isGenerated(name string) bool {
	nanos, rest, ok := strings.Cut(name, "-")
	if !ok || nanos == "" || strings.Trim(nanos, "0123456789") != "" {
		return false
	}
	ext := filepath.Ext(rest)
	if !generatedExt(ext) {
		return false
	}
	id := strings.TrimSuffix(rest, ext)
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func generatedExt(ext string) bool {
	if ext == "" {
		return false
	}
	for _, m := range allowed {
		if mt := mimetype.Lookup(m); mt != nil && mt.Extension() == ext {
			return true
		}
	}
	return false
}
