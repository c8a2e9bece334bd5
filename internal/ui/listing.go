package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"article-uploader/internal/protocol"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

type UploadLister interface {
	ListUploads(ctx context.Context) ([]protocol.UploadEntry, error)
}

// Listing re-renders the receiver's uploads after a successful submission.
type Listing struct {
	lister UploadLister
	out    io.Writer
	limit  int
}

func NewListing(lister UploadLister, out io.Writer, limit int) *Listing {
	return &Listing{lister: lister, out: out, limit: limit}
}

func (l *Listing) Refresh(ctx context.Context) error {
	entries, err := l.lister.ListUploads(ctx)
	if err != nil {
		return fmt.Errorf("failed to list uploads: %w", err)
	}
	if l.limit > 0 && len(entries) > l.limit {
		entries = entries[:l.limit]
	}
	RenderUploads(l.out, entries)
	return nil
}

// RenderUploads writes entries as a borderless table.
func RenderUploads(out io.Writer, entries []protocol.UploadEntry) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "File", "Type", "Size", "Hash", "Uploaded"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	table.AppendBulk(lo.Map(entries, func(e protocol.UploadEntry, _ int) []string {
		return []string{
			e.ID,
			e.File,
			e.Mime,
			fmt.Sprintf("%.2f KB", float64(e.Size)/1024),
			shortHash(e.Sha256),
			e.UploadedAt.Local().Format(time.DateTime),
		}
	}))
	table.Render()
}

func shortHash(h string) string {
	if len(h) <= 8 {
		return h
	}
	return h[:8] + "..."
}
