package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"slices"

	"buildcrafter/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// HarvestLinks lists the item pages linked from an item index page: the
// paths below prefix of the "ul.item-list" anchors on the wiki's own host,
// sorted and unique. Absolute links are resolved against base, fragments
// and queries are dropped.
func HarvestLinks(ctx context.Context, doc *goquery.Document, base *url.URL, prefix string) []string {
	links := []string{}
	for _, anchor := range htmlutil.GetAnchors(ctx, base, doc.Find("ul.item-list a")) {
		if anchor.Url.Host != "" && (base == nil || anchor.Url.Host != base.Host) {
			continue
		}
		href := anchor.Url.EscapedPath()
		if ValidatePath(href, prefix) != nil {
			continue
		}
		links = append(links, href)
	}
	slices.Sort(links)
	return slices.Compact(links)
}

// HarvestLinksHTML parses body before harvesting it.
func HarvestLinksHTML(ctx context.Context, body []byte, base *url.URL, prefix string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return HarvestLinks(ctx, doc, base, prefix), nil
}

// ReadPaths reads a JSON array of wiki paths.
func ReadPaths(filename string) ([]string, error) {
	buff, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var paths []string
	err = json.Unmarshal(buff, &paths)
	if err != nil {
		return nil, fmt.Errorf("decode paths %s: %w", filename, err)
	}
	return paths, nil
}

func WritePaths(filename string, paths []string) error {
	if paths == nil {
		paths = []string{}
	}
	buff, err := json.MarshalIndent(paths, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, buff, 0644)
}
