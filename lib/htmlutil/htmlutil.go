package htmlutil

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("buildcrafter.lib.htmlutil")

// GetText concatenates every text node under node, like goquery's Text().
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// DirectText returns the text nodes that are immediate children of the
// selected nodes, skipping text nested in links, spans and the like.
func DirectText(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, n := range sel.Nodes {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				buffer.WriteString(child.Data)
			}
		}
	}
	return strings.TrimSpace(buffer.String())
}

// SeparatedText trims every text node under the selection and joins the
// non-empty ones with sep.
func SeparatedText(sel *goquery.Selection, sep string) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectTrimmed(n, &parts)
	}
	return strings.Join(parts, sep)
}

func collectTrimmed(node *html.Node, out *[]string) {
	if node.Type == html.TextNode {
		text := strings.TrimSpace(node.Data)
		if text != "" {
			*out = append(*out, text)
		}
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectTrimmed(child, out)
	}
}

// SplitLines walks the selection in document order and splits its text on
// <br> elements at any depth. Lines are returned raw, empty ones included.
func SplitLines(sel *goquery.Selection) []string {
	var lines []string
	var current strings.Builder
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		switch {
		case node.Type == html.TextNode:
			current.WriteString(node.Data)
			return
		case node.Type == html.ElementNode && node.Data == "br":
			lines = append(lines, current.String())
			current.Reset()
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	lines = append(lines, current.String())
	return lines
}

// Anchor is a link with its cleaned text and its url made absolute.
type Anchor struct {
	Name  string
	Title string
	Url   *url.URL
}

func removeNonPrintable(s string) string {
	var out strings.Builder
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			out.WriteRune(c)
		}
	}
	return out.String()
}

// GetAnchors collects the anchors of a selection that carry an href,
// resolving relative hrefs against base when it is non-nil. Anchors with
// unparsable hrefs are skipped.
func GetAnchors(ctx context.Context, base *url.URL, sel *goquery.Selection) []Anchor {
	_, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	anchors := []Anchor{}
	for i, n := range sel.Nodes {
		a := sel.Eq(i)
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			continue
		}

		link, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "got error while parsing url")
			continue
		}
		if base != nil {
			link = base.ResolveReference(link)
		}

		name := strings.Join(strings.Fields(removeNonPrintable(GetText(n))), " ")
		anchors = append(anchors, Anchor{
			Name:  name,
			Title: a.AttrOr("title", ""),
			Url:   link,
		})
		span.AddEvent("anchor", trace.WithAttributes(
			attribute.String("name", name),
			attribute.String("url", link.String()),
		))
	}
	span.SetAttributes(attribute.Int("anchors", len(anchors)))

	return anchors
}
