// Package exporter writes the link catalog as Netscape bookmark HTML so
// it can be imported into any browser.
package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/newtab/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/newtab-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("newtab-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders the catalog to Netscape bookmark HTML format, one
// folder per category in first-seen order.
func ExportHTML(links []model.Link) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, category := range categories(links) {
		fmt.Fprintf(&b, "    <DT><H3>%s</H3>\n", html.EscapeString(category))
		b.WriteString("    <DL><p>\n")
		for _, link := range links {
			if link.Category != category {
				continue
			}
			writeLink(&b, link)
		}
		b.WriteString("    </DL><p>\n")
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

// categories returns the distinct categories in first-seen order.
func categories(links []model.Link) []string {
	seen := make(map[string]bool)
	var out []string
	for _, link := range links {
		if !seen[link.Category] {
			seen[link.Category] = true
			out = append(out, link.Category)
		}
	}
	return out
}

func writeLink(b *strings.Builder, link model.Link) {
	attrs := fmt.Sprintf("HREF=\"%s\"", html.EscapeString(link.URL))
	if link.Logo != "" {
		attrs += fmt.Sprintf(" ICON=\"%s\"", html.EscapeString(link.Logo))
	}
	fmt.Fprintf(b, "        <DT><A %s>%s</A>\n", attrs, html.EscapeString(link.Name))
}
