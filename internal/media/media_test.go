package media

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 32)...)

// fileHeader builds a real *multipart.FileHeader the same way net/http would.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("ReadForm: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func newStore(t *testing.T, max int64) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "uploads"), max)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestSave_PNG(t *testing.T) {
	s := newStore(t, 0)
	name, err := s.Save(fileHeader(t, "palov.txt", pngBytes))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Fatalf("expected sniffed .png extension, got %q", name)
	}
	got, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(got, pngBytes) {
		t.Fatalf("stored bytes differ")
	}
}

func TestSave_NamesAreUnique(t *testing.T) {
	s := newStore(t, 0)
	a, err := s.Save(fileHeader(t, "a.png", pngBytes))
	if err != nil {
		t.Fatalf("Save a: %v", err)
	}
	b, err := s.Save(fileHeader(t, "a.png", pngBytes))
	if err != nil {
		t.Fatalf("Save b: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct names, both %q", a)
	}
}

func TestSave_RejectsNonImage(t *testing.T) {
	s := newStore(t, 0)
	_, err := s.Save(fileHeader(t, "evil.png", []byte("<html><script>alert(1)</script></html>")))
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("err=%v want ErrUnsupportedImage", err)
	}
	entries, _ := os.ReadDir(s.Dir)
	if len(entries) != 0 {
		t.Fatalf("rejected upload left %d files behind", len(entries))
	}
}

func TestSave_TooLarge(t *testing.T) {
	s := newStore(t, 16)
	if _, err := s.Save(fileHeader(t, "big.png", pngBytes)); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("err=%v want ErrImageTooLarge", err)
	}
}

func TestSave_NameIsRecognizedAsStored(t *testing.T) {
	s := newStore(t, 0)
	name, err := s.Save(fileHeader(t, "x.png", pngBytes))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, ok := LocalName(URL(name)); !ok || got != name {
		t.Fatalf("LocalName(URL(%q))=(%q,%v)", name, got, ok)
	}
}

func TestRemove(t *testing.T) {
	s := newStore(t, 0)
	name, err := s.Save(fileHeader(t, "x.png", pngBytes))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Remove(name); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Dir, name)); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
	if err := s.Remove(name); err != nil {
		t.Fatalf("Remove missing should be nil, got %v", err)
	}
	for _, bad := range []string{"", "..", "../etc/passwd", "a/b.png", `a\b.png`} {
		if err := s.Remove(bad); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("Remove(%q) err=%v want ErrInvalidName", bad, err)
		}
	}
}

func TestURLAndLocalName(t *testing.T) {
	const id = "0b7f3c2e-4a1d-4c6b-9e2f-5d8a7b6c1e90"
	gen := "1718000000123456789-" + id + ".png"
	cases := []struct {
		ref     string
		url     string
		local   string
		isLocal bool
	}{
		{"", "", "", false},
		{gen, "/uploads/" + gen, gen, true},
		{"/uploads/" + gen, "/uploads/" + gen, gen, true},
		{"manti.jpg", "/uploads/manti.jpg", "", false},
		{"/uploads/manti.jpg", "/uploads/manti.jpg", "", false},
		{"123-abc.png", "/uploads/123-abc.png", "", false},
		{"1718000000-" + id + ".exe", "/uploads/1718000000-" + id + ".exe", "", false},
		{"x1-" + id + ".png", "/uploads/x1-" + id + ".png", "", false},
		{"../1-" + id + ".png", "/uploads/../1-" + id + ".png", "", false},
		{"https://cdn.example.com/p.jpg", "https://cdn.example.com/p.jpg", "", false},
		{"/static/p.jpg", "/static/p.jpg", "", false},
	}
	for _, tc := range cases {
		if got := URL(tc.ref); got != tc.url {
			t.Fatalf("URL(%q)=%q want %q", tc.ref, got, tc.url)
		}
		name, ok := LocalName(tc.ref)
		if ok != tc.isLocal || name != tc.local {
			t.Fatalf("LocalName(%q)=(%q,%v) want (%q,%v)", tc.ref, name, ok, tc.local, tc.isLocal)
		}
	}
}
