// Package cards builds Twitter Card meta tags.
package cards

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/lepinkainen/embed-forge/pkg/validate"
)

// Card types
const (
	TypeSummary           = "summary"
	TypeSummaryLargeImage = "summary_large_image"
	TypePlayer            = "player"
)

// Text limits, in runes
const (
	MaxTitleLength       = 70
	MaxDescriptionLength = 200
	MaxImageAltLength    = 420
)

// Large image cards need at least this image size
const (
	LargeImageMinWidth  = 280
	LargeImageMinHeight = 150
)

const ellipsis = "…"

// MetaTag is a single <meta name content> pair
type MetaTag struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Card is a Twitter Card. Setters ignore invalid values.
type Card struct {
	cardType     string
	site         string
	siteID       string
	creator      string
	creatorID    string
	title        string
	description  string
	image        string
	imageAlt     string
	imageWidth   int
	imageHeight  int
	player       string
	playerWidth  int
	playerHeight int
}

// New returns a card of the given type, summary when the type is unknown
func New(cardType string) *Card {
	c := &Card{cardType: TypeSummary}
	c.SetType(cardType)
	return c
}

// Type returns the card type
func (c *Card) Type() string { return c.cardType }

// Title returns the (truncated) title
func (c *Card) Title() string { return c.title }

// Description returns the (truncated) description
func (c *Card) Description() string { return c.description }

// Image returns the image URL
func (c *Card) Image() string { return c.image }

// SetType selects the card type
func (c *Card) SetType(cardType string) *Card {
	switch cardType {
	case TypeSummary, TypeSummaryLargeImage, TypePlayer:
		c.cardType = cardType
	}
	return c
}

// SetSite attributes the card to the site account
func (c *Card) SetSite(screenName string) *Card {
	if name := validate.CleanScreenName(screenName); name != "" {
		c.site = name
	}
	return c
}

// SetSiteID sets the numeric ID of the site account
func (c *Card) SetSiteID(id string) *Card {
	if validate.SnowflakeID(id) {
		c.siteID = id
	}
	return c
}

// SetCreator attributes the card to the content author
func (c *Card) SetCreator(screenName string) *Card {
	if name := validate.CleanScreenName(screenName); name != "" {
		c.creator = name
	}
	return c
}

// SetCreatorID sets the numeric ID of the content author
func (c *Card) SetCreatorID(id string) *Card {
	if validate.SnowflakeID(id) {
		c.creatorID = id
	}
	return c
}

// SetTitle sets the title, truncating it to MaxTitleLength
func (c *Card) SetTitle(title string) *Card {
	if title = truncate(collapseSpace(title), MaxTitleLength); title != "" {
		c.title = title
	}
	return c
}

// SetDescription sets the description, truncating it to MaxDescriptionLength
func (c *Card) SetDescription(description string) *Card {
	if description = truncate(collapseSpace(description), MaxDescriptionLength); description != "" {
		c.description = description
	}
	return c
}

// SetImage sets an absolute image URL with its size. Unknown dimensions are passed as 0.
func (c *Card) SetImage(imageURL string, width, height int) *Card {
	if !validate.AbsoluteURL(imageURL) {
		return c
	}
	c.image = imageURL
	c.imageWidth = max(width, 0)
	c.imageHeight = max(height, 0)
	return c
}

// SetImageAlt sets the image description, truncating it to MaxImageAltLength
func (c *Card) SetImageAlt(alt string) *Card {
	if alt = truncate(collapseSpace(alt), MaxImageAltLength); alt != "" {
		c.imageAlt = alt
	}
	return c
}

// SetPlayer sets the HTTPS iframe URL of a player card
func (c *Card) SetPlayer(playerURL string, width, height int) *Card {
	if !validate.AbsoluteURL(playerURL) || !strings.HasPrefix(playerURL, "https://") || width <= 0 || height <= 0 {
		return c
	}
	c.player = playerURL
	c.playerWidth = width
	c.playerHeight = height
	return c
}

// LargeImage reports whether the image is big enough for summary_large_image
func (c *Card) LargeImage() bool {
	return c.image != "" && c.imageWidth >= LargeImageMinWidth && c.imageHeight >= LargeImageMinHeight
}

// MetaTags returns the card as ordered twitter:* pairs. A player card without a player falls back to summary.
func (c *Card) MetaTags() []MetaTag {
	cardType := c.cardType
	if cardType == TypePlayer && c.player == "" {
		cardType = TypeSummary
	}

	tags := []MetaTag{{Name: "twitter:card", Content: cardType}}
	add := func(name, content string) {
		if content != "" {
			tags = append(tags, MetaTag{Name: "twitter:" + name, Content: content})
		}
	}
	addInt := func(name string, value int) {
		if value > 0 {
			add(name, strconv.Itoa(value))
		}
	}

	add("site", atName(c.site))
	add("site:id", c.siteID)
	add("creator", atName(c.creator))
	add("creator:id", c.creatorID)
	add("title", c.title)
	add("description", c.description)
	add("image", c.image)
	if c.image != "" {
		add("image:alt", c.imageAlt)
		addInt("image:width", c.imageWidth)
		addInt("image:height", c.imageHeight)
	}
	if cardType == TypePlayer {
		add("player", c.player)
		addInt("player:width", c.playerWidth)
		addInt("player:height", c.playerHeight)
	}
	return tags
}

// Render returns one <meta> element per tag, newline separated
func (c *Card) Render() (string, error) {
	var buf bytes.Buffer
	for _, tag := range c.MetaTags() {
		node := &html.Node{
			Type:     html.ElementNode,
			Data:     "meta",
			DataAtom: atom.Meta,
			Attr: []html.Attribute{
				{Key: "name", Val: tag.Name},
				{Key: "content", Val: tag.Content},
			},
		}
		if err := html.Render(&buf, node); err != nil {
			return "", err
		}
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}

func atName(screenName string) string {
	if screenName == "" {
		return ""
	}
	return "@" + screenName
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens s to at most limit runes, ending with an ellipsis when cut
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:limit-1]), " ") + ellipsis
}
