// Package docstore stores uploaded court documents on the local filesystem.
// Scanning and long-term archival belong to the document pipeline upstream;
// this store only keeps the bytes and reports where they landed.
package docstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/ports"
)

// Store implements ports.DocumentStore on a local directory. Files are laid
// out as <root>/<ownerID>/<random>-<filename> so concurrent uploads of the
// same filename never collide.
type Store struct {
	root    string
	baseURL string
}

// NewStore creates a store rooted at the given directory.
func NewStore(root, baseURL string) *Store {
	return &Store{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload writes the document and returns its URL and page count.
func (s *Store) Upload(ctx context.Context, ownerID kernel.UUID, filename string, content io.Reader) (ports.UploadedDocument, error) {
	if err := ctx.Err(); err != nil {
		return ports.UploadedDocument{}, err
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return ports.UploadedDocument{}, err
	}

	dir := filepath.Join(s.root, ownerID.String())
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return ports.UploadedDocument{}, err
	}

	name := fmt.Sprintf("%s-%s", kernel.NewUUID().String()[:8], filepath.Base(filename))
	if err = os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return ports.UploadedDocument{}, err
	}

	return ports.UploadedDocument{
		URL:       fmt.Sprintf("%s/%s/%s", s.baseURL, ownerID.String(), name),
		PageCount: countPages(filename, data),
	}, nil
}

// countPages estimates the page count. PDF pages are counted from the page
// object markers; anything else counts as one page.
func countPages(filename string, data []byte) int {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return 1
	}

	pages := bytes.Count(data, []byte("/Type /Page")) - bytes.Count(data, []byte("/Type /Pages"))
	if pages < 1 {
		return 1
	}
	return pages
}
