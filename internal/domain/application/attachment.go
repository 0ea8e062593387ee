package application

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MaxAttachmentSize is the per-file upload limit.
const MaxAttachmentSize = 10 * 1024 * 1024

// FileUpload is a raw incoming file before encoding.
type FileUpload struct {
	Name     string
	Size     int64
	MimeType string
	Content  io.Reader
}

// EncodeAttachments converts a batch of uploads into self-contained
// attachments. Constraint checks are all-or-nothing: one oversized or
// non-image file rejects the whole batch before any content is read.
// Encoding runs concurrently and the call returns only once every file has
// been read; any read failure aborts the batch.
func EncodeAttachments(ctx context.Context, uploads []FileUpload) ([]Attachment, error) {
	for _, up := range uploads {
		if up.Size > MaxAttachmentSize {
			return nil, fmt.Errorf("%w: %s", ErrAttachmentTooLarge, up.Name)
		}
		if !strings.HasPrefix(up.MimeType, "image/") {
			return nil, fmt.Errorf("%w: %s", ErrAttachmentType, up.Name)
		}
	}

	attachments := make([]Attachment, len(uploads))
	g, ctx := errgroup.WithContext(ctx)
	for i, up := range uploads {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Read one byte past the declared size so a lying multipart
			// header cannot smuggle in an oversized payload.
			data, err := io.ReadAll(io.LimitReader(up.Content, MaxAttachmentSize+1))
			if err != nil {
				return fmt.Errorf("reading %s: %w", up.Name, err)
			}
			if int64(len(data)) > MaxAttachmentSize {
				return fmt.Errorf("%w: %s", ErrAttachmentTooLarge, up.Name)
			}
			attachments[i] = Attachment{
				ID:       uuid.NewString(),
				Name:     up.Name,
				Size:     int64(len(data)),
				MimeType: up.MimeType,
				Data:     encodeDataURI(up.MimeType, data),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return attachments, nil
}

func encodeDataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
