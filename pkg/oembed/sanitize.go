package oembed

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StripScripts removes <script> elements from an HTML fragment.
// Fragments without scripts are returned unchanged.
func StripScripts(fragment string) string {
	if !strings.Contains(strings.ToLower(fragment), "<script") {
		return fragment
	}

	parent := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), parent)
	if err != nil {
		return ""
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if isScript(n) {
			continue
		}
		removeScripts(n)
		if err := html.Render(&buf, n); err != nil {
			return ""
		}
	}
	return strings.TrimSpace(buf.String())
}

func removeScripts(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if isScript(c) {
			n.RemoveChild(c)
		} else {
			removeScripts(c)
		}
		c = next
	}
}

func isScript(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Script
}
