package recipe

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// parseDocument turns raw markup into a queryable document. The x/net/html
// parser is lenient; an error here means the body could not be read at all.
func parseDocument(body []byte) (*goquery.Document, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("recipe: parse html: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}
