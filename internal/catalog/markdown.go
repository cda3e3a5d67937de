package catalog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/nikbrunner/newtab/internal/model"
)

// Expected pipe-table columns. Unknown columns are ignored so the source
// table can carry extra notes.
const (
	colOrder        = "Order"
	colName         = "Link Name"
	colLink         = "Link"
	colCategory     = "Grouping"
	colLogo         = "Logo URL"
	colProject      = "Project Link"
	colAnalytics    = "Umami Tracking Link"
	defaultCategory = "Other"
)

var (
	mdLinkRE    = regexp.MustCompile(`\[.*?\]\((.*?)\)`)
	angleLinkRE = regexp.MustCompile(`^<(.+)>$`)
	websiteIDRE = regexp.MustCompile(`(?i)/websites/([0-9a-f-]{36})`)
)

// ParseMarkdown extracts the link table found under the given heading.
// Table rows turn into catalog links; lines outside the section and any
// non-table lines inside it are skipped. Parsing stops at the next heading.
func ParseMarkdown(r io.Reader, heading string) ([]model.Link, error) {
	headingRE, err := regexp.Compile(`^#{1,6}\s+` + regexp.QuoteMeta(heading) + `\s*$`)
	if err != nil {
		return nil, err
	}

	var tableLines []string
	inSection := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if headingRE.MatchString(line) {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if strings.HasPrefix(line, "#") {
			break
		}
		if strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|") {
			tableLines = append(tableLines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !inSection {
		return nil, fmt.Errorf("heading %q not found", heading)
	}
	if len(tableLines) < 2 {
		return nil, fmt.Errorf("no table found under %q", heading)
	}

	headers := parseRow(tableLines[0])
	var links []model.Link

	// Skip the header and separator rows.
	for _, row := range tableLines[2:] {
		cells := parseRow(row)
		values := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				values[h] = cells[i]
			}
		}

		if values[colName] == "" && values[colLink] == "" {
			continue
		}

		order, _ := strconv.Atoi(values[colOrder])
		category := values[colCategory]
		if category == "" {
			category = defaultCategory
		}

		links = append(links, model.Link{
			Order:       order,
			Name:        values[colName],
			URL:         extractURL(values[colLink]),
			Category:    category,
			Logo:        extractURL(values[colLogo]),
			ProjectLink: extractURL(values[colProject]),
			AnalyticsID: ExtractAnalyticsID(extractURL(values[colAnalytics])),
		})
	}

	return links, nil
}

// parseRow splits a pipe-table row into trimmed cells.
func parseRow(line string) []string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(line, "|"), "|")
	cells := strings.Split(trimmed, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// extractURL pulls a plain URL out of the cell formats the source table uses:
// [text](url), <url>, a bare URL, or an Obsidian [[wiki link]] (no URL).
func extractURL(val string) string {
	val = strings.TrimSpace(val)
	if val == "" {
		return ""
	}
	if m := mdLinkRE.FindStringSubmatch(val); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := angleLinkRE.FindStringSubmatch(val); m != nil {
		return strings.TrimSpace(m[1])
	}
	if strings.HasPrefix(val, "[[") {
		return ""
	}
	return val
}

// ExtractAnalyticsID pulls the website UUID out of an Umami dashboard URL,
// e.g. https://cloud.umami.is/websites/{id}. Returns "" when the URL does
// not carry a valid website id.
func ExtractAnalyticsID(dashboardURL string) string {
	m := websiteIDRE.FindStringSubmatch(dashboardURL)
	if m == nil {
		return ""
	}
	if _, err := uuid.Parse(m[1]); err != nil {
		return ""
	}
	return strings.ToLower(m[1])
}
