package cards

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/lepinkainen/embed-forge/pkg/shortcode"
	"github.com/lepinkainen/embed-forge/pkg/site"
	"github.com/lepinkainen/embed-forge/pkg/urlutils"
	"github.com/lepinkainen/embed-forge/pkg/validate"
)

// ForPost builds the card for a post.
// Meta overrides win over the post title and excerpt. Without an excerpt the description is taken from
// the text of the content with embeds removed, and without a featured image the first absolute <img> in the content is used.
func ForPost(post site.Post, options site.Options) (*Card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(post.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse post content: %w", err)
	}

	card := New(TypeSummary).
		SetSite(options.Username).
		SetSiteID(options.UserID).
		SetCreator(post.AuthorUsername)

	title := post.Meta.CardTitle
	if strings.TrimSpace(title) == "" {
		title = post.Title
	}
	card.SetTitle(title)

	description := post.Meta.CardDescription
	if strings.TrimSpace(description) == "" {
		description = post.Excerpt
	}
	if strings.TrimSpace(description) == "" {
		description, err = contentText(post.Content)
		if err != nil {
			return nil, err
		}
	}
	card.SetDescription(description)

	if img := post.FeaturedImage; img != nil && validate.AbsoluteURL(img.URL) {
		card.SetImage(img.URL, img.Width, img.Height).SetImageAlt(img.Alt)
	} else {
		contentImage(doc, card, post.Permalink)
	}

	if card.LargeImage() {
		card.SetType(TypeSummaryLargeImage)
	}

	slog.Debug("Built card", "post", post.ID, "type", card.Type(), "image", card.Image())
	return card, nil
}

// blockElements end a run of text; their text is separated from the surrounding text
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true, atom.Br: true,
	atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true, atom.Figcaption: true,
	atom.Figure: true, atom.Footer: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Header: true, atom.Hr: true,
	atom.Li: true, atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true,
	atom.Table: true, atom.Td: true, atom.Th: true, atom.Tr: true, atom.Ul: true,
}

// contentText returns the readable text of post content. Embed shortcodes and embed URL lines are
// dropped and block elements are separated by a space.
func contentText(content string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(shortcode.StripEmbeds(content)))
	if err != nil {
		return "", fmt.Errorf("failed to parse post content: %w", err)
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}
		block := n.Type == html.ElementNode && blockElements[n.DataAtom]
		if block {
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteByte(' ')
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(b.String()), " "), nil
}

// contentImage copies the first usable <img> of the content onto the card.
// Relative sources are resolved against the post permalink.
func contentImage(doc *goquery.Document, card *Card, permalink string) {
	doc.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		src = strings.TrimSpace(src)
		if src != "" && urlutils.IsValidURL(permalink) {
			if resolved, err := urlutils.ResolveURL(permalink, src); err == nil {
				src = resolved
			}
		}
		if !validate.AbsoluteURL(src) {
			return true
		}
		card.SetImage(src, intAttr(s, "width"), intAttr(s, "height"))
		if alt, ok := s.Attr("alt"); ok {
			card.SetImageAlt(alt)
		}
		return false
	})
}

func intAttr(s *goquery.Selection, name string) int {
	raw, ok := s.Attr(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
