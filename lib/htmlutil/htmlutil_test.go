package htmlutil

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parse(t testing.TB, markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestDirectText(t *testing.T) {
	doc := parse(t, `<div id="v">12 <a href="/wiki/x">linked</a> <sup>[1]</sup>coins</div><div id="e"><a>only link</a></div>`)

	require.Equal(t, "12  coins", DirectText(doc.Find("#v")))
	require.Equal(t, "", DirectText(doc.Find("#e")))
	require.Equal(t, "only link", GetText(doc.Find("#e").Nodes[0]))
}

func TestSeparatedText(t *testing.T) {
	doc := parse(t, `<div id="v"> 8<span>–</span>12 <b> </b></div>`)
	require.Equal(t, "8 – 12", SeparatedText(doc.Find("#v"), " "))
}

func TestSplitLines(t *testing.T) {
	doc := parse(t, `<div id="v">+5% <a>Mining</a> speed<br/><span>+2 Armor<br>+10 Health</span><br /></div>`)

	lines := SplitLines(doc.Find("#v"))
	expected := []string{"+5% Mining speed", "+2 Armor", "+10 Health", ""}
	if diff := cmp.Diff(expected, lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAnchors(t *testing.T) {
	doc := parse(t, `<ul>
		<li><a href="/wiki/Tin_Helm" title="Tin Helm">  Tin
		   Helm </a></li>
		<li><a href="https://example.com/x">abs</a></li>
		<li><a>no href</a></li>
		<li><a href="  ">blank</a></li>
	</ul>`)
	base, err := url.Parse("https://core-keeper.fandom.com")
	if err != nil {
		t.Fatal(err)
	}

	anchors := GetAnchors(context.Background(), base, doc.Find("a"))
	require.Len(t, anchors, 2)
	require.Equal(t, "Tin Helm", anchors[0].Name)
	require.Equal(t, "Tin Helm", anchors[0].Title)
	require.Equal(t, "https://core-keeper.fandom.com/wiki/Tin_Helm", anchors[0].Url.String())
	require.Equal(t, "https://example.com/x", anchors[1].Url.String())
	require.Equal(t, "", anchors[1].Title)

	relative := GetAnchors(context.Background(), nil, doc.Find("a").First())
	require.Len(t, relative, 1)
	require.Equal(t, "/wiki/Tin_Helm", relative[0].Url.String())
}
