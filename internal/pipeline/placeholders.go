package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// placeholderToken matches an artifact token such as "{01-2.png}" in rendered text.
var placeholderToken = regexp.MustCompile(`\{([^{}\s/\\]+-\d+\.png)\}`)

// LinkPlaceholders turns artifact tokens in an HTML fragment into <img>
// elements pointing at the artifact file. Tokens inside code, pre, script
// and style elements are left alone.
func LinkPlaceholders(fragment string) (string, error) {
	doc, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}
	linkNode(doc)
	return renderFragment(doc)
}

func parseFragment(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

func renderFragment(doc *html.Node) (string, error) {
	var buf strings.Builder
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func linkNode(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Code, atom.Pre, atom.Script, atom.Style:
			return
		}
	}

	// Collect first: splitting a text node rewires the sibling list.
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	for _, c := range children {
		if c.Type == html.TextNode {
			splitTextNode(c)
			continue
		}
		linkNode(c)
	}
}

func splitTextNode(n *html.Node) {
	matches := placeholderToken.FindAllStringSubmatchIndex(n.Data, -1)
	if len(matches) == 0 {
		return
	}

	parent := n.Parent
	text := n.Data
	last := 0
	for _, m := range matches {
		if m[0] > last {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text[last:m[0]]}, n)
		}
		name := text[m[2]:m[3]]
		parent.InsertBefore(&html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Img,
			Data:     "img",
			Attr: []html.Attribute{
				{Key: "src", Val: name},
				{Key: "alt", Val: name},
			},
		}, n)
		last = m[1]
	}
	if last < len(text) {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text[last:]}, n)
	}
	parent.RemoveChild(n)
}
