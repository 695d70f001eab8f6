// Package browser provides the default window service: a DOM provider
// backed by golang.org/x/net/html. It parses HTML strings into detached
// documents and hands them to the conversion engine as windows.
package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/mkowalczyk/htmldown/converter"
)

// Service implements converter.WindowService over x/net/html.
type Service struct {
	// BaseURI is reported as the base URI of every window the service
	// opens. A <base href> in the parsed document takes precedence.
	BaseURI string
}

// ServiceName registers the service as the engine's DOM provider.
func (Service) ServiceName() string {
	return converter.WindowServiceName
}

// Open parses an HTML document into a detached window. The parser is
// forgiving, so malformed markup still yields a document.
func (s Service) Open(htmlText string) (*converter.Window, error) {
	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	base := s.BaseURI
	if href := baseHref(doc); href != "" {
		base = href
	}

	return &converter.Window{Document: doc, BaseURI: base}, nil
}

// Close releases a window. Detached documents hold no resources, so this is
// a no-op kept for the service contract.
func (Service) Close(*converter.Window) error {
	return nil
}

func baseHref(n *html.Node) string {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, "base") {
		for _, attr := range n.Attr {
			if strings.EqualFold(attr.Key, "href") {
				return attr.Val
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if href := baseHref(child); href != "" {
			return href
		}
	}
	return ""
}
