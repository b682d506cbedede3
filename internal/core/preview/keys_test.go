package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/markdave123-py/s3-previewer/internal/models"
)

func TestKeyResolver_Resolve(t *testing.T) {
	r := NewKeyResolver("images", "f")

	tests := []struct {
		name string
		raw  string
		want models.ObjectKey
	}{
		{"plain name", "report.pdf", "images/report.pdf"},
		{"legacy marker stripped", "freport.pdf", "images/report.pdf"},
		{"marker stripped once", "ffoo.txt", "images/foo.txt"},
		{"nested name", "2024/scan.png", "images/2024/scan.png"},
		{"traversal passes through", "../secret.txt", "images/../secret.txt"},
		{"empty input", "", "images/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.raw))
		})
	}
}

func TestKeyResolver_PrefixedEqualsUnprefixed(t *testing.T) {
	r := NewKeyResolver("docs", "f")

	for _, name := range []string{"a.pdf", "notes.md", "photo.jpeg", "x"} {
		assert.Equal(t, r.Resolve(name), r.Resolve("f"+name), name)
	}
}

func TestKeyResolver_NoFolderNoPrefix(t *testing.T) {
	r := NewKeyResolver("", "")

	assert.Equal(t, models.ObjectKey("file.txt"), r.Resolve("file.txt"))
}

func TestKeyResolver_FolderSlashesTrimmed(t *testing.T) {
	r := NewKeyResolver("/uploads/", "")

	assert.Equal(t, models.ObjectKey("uploads/a.png"), r.Resolve("a.png"))
}

func TestFileNameAndExtension(t *testing.T) {
	assert.Equal(t, "scan.PNG", FileName("images/2024/scan.PNG"))
	assert.Equal(t, "solo", FileName("solo"))

	assert.Equal(t, "png", Extension("scan.PNG"))
	assert.Equal(t, "gz", Extension("archive.tar.gz"))
	assert.Equal(t, "", Extension("README"))
	assert.Equal(t, "", Extension("trailing."))
}
