// Package publisher persists a generated document set on the caller's side. The agent itself
// only returns content; the CLI uses this package to put the documents on disk.
package publisher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"agentcore_spec_agent/generator"
)

// ErrFailedResult is returned when asked to publish an unsuccessful run.
var ErrFailedResult = errors.New("cannot publish a failed spec result")

// Options controls what Publish writes besides the documents themselves.
type Options struct {
	// HTML also renders every Markdown document to a sibling .html file.
	HTML bool
}

// Publisher writes documents to the paths the workflow assigned them.
type Publisher struct {
	opts Options
	md   goldmark.Markdown
}

func New(opts Options) *Publisher {
	return &Publisher{
		opts: opts,
		// GFM keeps the backlog's task-list checkboxes and tables intact.
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Publish writes each document of result, in generation order, and returns every path written.
func (p *Publisher) Publish(ctx context.Context, result generator.SpecResult) ([]string, error) {
	if !result.Success || result.Files == nil {
		return nil, ErrFailedResult
	}

	var written []string
	for _, doc := range result.Files.Ordered() {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := writeFile(doc.Path, []byte(doc.Content)); err != nil {
			return written, err
		}
		written = append(written, doc.Path)
		slog.DebugContext(ctx, "Wrote document", "path", doc.Path, "size", doc.Size)

		if !p.opts.HTML || !strings.HasSuffix(doc.Path, ".md") {
			continue
		}
		page, err := p.renderPage(result.ProjectName, doc.Content)
		if err != nil {
			return written, fmt.Errorf("render %s: %w", doc.Path, err)
		}
		htmlPath := strings.TrimSuffix(doc.Path, ".md") + ".html"
		if err := writeFile(htmlPath, page); err != nil {
			return written, err
		}
		written = append(written, htmlPath)
	}

	slog.InfoContext(ctx, "Published spec documents", "project", result.ProjectName, "files", len(written))
	return written, nil
}

// MarkdownToHTML renders a Markdown fragment.
func (p *Publisher) MarkdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *Publisher) renderPage(title, md string) ([]byte, error) {
	body, err := p.MarkdownToHTML(md)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title>\n</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.Bytes(), nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
