package fetch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheKeySlug(t *testing.T) {
	t.Parallel()

	c, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	cases := []struct {
		name string
		url  string
		want string
	}{
		{"typical poem url", "https://poets.org/poem/hope-thing-feathers", "https-poets-org-poem-hope-thing-feathers.html"},
		{"uppercase folded", "HTTPS://Poets.ORG/Poem", "https-poets-org-poem.html"},
		{"query string", "https://poets.org/poem?x=1&y=2", "https-poets-org-poem-x-1-y-2.html"},
		{"empty", "", "page.html"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := c.Key(tc.url); got != tc.want {
				t.Fatalf("Key(%q) = %q; want %q", tc.url, got, tc.want)
			}
		})
	}
}

func TestCacheKeyDeterministic(t *testing.T) {
	t.Parallel()

	c, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	url := "https://poets.org/poem/song-myself"
	if c.Key(url) != c.Key(url) {
		t.Fatal("expected identical keys for identical URLs")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c, err := NewCache(dir)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	key := c.Key("https://poets.org/poem/the-raven")
	if _, err := c.Get(key); err == nil {
		t.Fatal("expected miss on empty cache")
	}

	want := []byte("<html>raven</html>")
	if err := c.Put(key, want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}

	// Content is written verbatim, one file per URL.
	onDisk, err := os.ReadFile(filepath.Join(dir, key))
	if err != nil {
		t.Fatalf("read cache file: %v", err)
	}
	if string(onDisk) != string(want) {
		t.Fatalf("expected verbatim cache file, got %q", onDisk)
	}
}

func TestNewCacheRejectsEmptyDir(t *testing.T) {
	t.Parallel()

	if _, err := NewCache("  "); err == nil {
		t.Fatal("expected error for blank cache dir")
	}
}
