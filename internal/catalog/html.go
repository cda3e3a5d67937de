package catalog

import (
	"io"
	"strings"

	"github.com/nikbrunner/newtab/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLBookmarks parses a Netscape bookmarks export into catalog links.
// The top-level folder a bookmark sits in becomes its category; bookmarks
// outside any folder land in the default category. Catalog order follows
// document order.
func ParseHTMLBookmarks(r io.Reader) ([]model.Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var links []model.Link
	var folderStack []string
	var pendingFolder string
	havePending := false

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				if name := getTextContent(n); name != "" {
					pendingFolder = name
					havePending = true
				}
				return // Don't recurse into H3

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				name := getTextContent(n)
				if name == "" {
					name = href
				}

				category := defaultCategory
				if len(folderStack) > 0 {
					// Top-level folder names the category
					category = folderStack[0]
				}

				links = append(links, model.Link{
					URL:      href,
					Name:     name,
					Category: category,
					Logo:     getAttr(n, "icon"),
					Order:    len(links),
				})
				return // Don't recurse into A

			case "dl":
				pushed := false
				if havePending {
					folderStack = append(folderStack, pendingFolder)
					havePending = false
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return // Children handled above
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return links, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
