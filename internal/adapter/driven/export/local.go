package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
)

// LocalArchive writes artifacts under a directory instead of a bucket. Used by --dry-run.
type LocalArchive struct {
	dir string
}

// NewLocalArchive creates an archive rooted at dir.
func NewLocalArchive(dir string) *LocalArchive {
	return &LocalArchive{dir: dir}
}

// Put writes body to dir/bucket/key.
func (a *LocalArchive) Put(_ context.Context, bucket, key string, body []byte, _ string) error {
	path := filepath.Join(a.dir, bucket, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory '%s': %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

// LocalMailbox writes each message as .html and .txt files instead of sending it.
type LocalMailbox struct {
	dir string
	now func() time.Time
}

// NewLocalMailbox creates a mailbox rooted at dir.
func NewLocalMailbox(dir string) *LocalMailbox {
	return &LocalMailbox{dir: dir, now: time.Now}
}

// Send stores the message and returns the base file name as message id.
func (m *LocalMailbox) Send(_ context.Context, email entity.Email) (string, error) {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", m.dir, err)
	}

	base := generateFilename(email.Subject, m.now())
	header := fmt.Sprintf("From: %s\nTo: %s\nSubject: %s\n\n", email.From, strings.Join(email.To, ", "), email.Subject)

	if err := os.WriteFile(filepath.Join(m.dir, base+".html"), []byte(email.HTMLBody), 0644); err != nil {
		return "", fmt.Errorf("error writing HTML body: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, base+".txt"), []byte(header+email.TextBody), 0644); err != nil {
		return "", fmt.Errorf("error writing text body: %w", err)
	}
	return base, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// generateFilename cria um nome de arquivo seguro com timestamp.
func generateFilename(base string, at time.Time) string {
	name := strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "_")
	if name == "" {
		name = "report"
	}
	return fmt.Sprintf("%s_%s", name, at.Format("20060102_150405"))
}
