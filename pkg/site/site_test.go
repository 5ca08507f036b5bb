package site

import (
	"testing"
)

func TestShareButton(t *testing.T) {
	post := Post{
		Title:          "Hello world",
		Permalink:      "https://example.com/hello",
		AuthorUsername: "@author",
		Meta:           Meta{Hashtags: []string{"go", "#news"}},
	}
	options := Options{Username: "@site"}

	button := ShareButton(post, options)

	want := "text=Hello+world&url=https%3A%2F%2Fexample.com%2Fhello&hashtags=go%2Cnews&via=site&related=author"
	if got := button.AttributeMap().Query(); got != want {
		t.Errorf("AttributeMap = %q, want %q", got, want)
	}
}

func TestShareButtonPrefersShareText(t *testing.T) {
	post := Post{Title: "Title", Meta: Meta{ShareText: "  Custom text "}}
	button := ShareButton(post, Options{})

	if button.Text() != "Custom text" {
		t.Errorf("Text = %q", button.Text())
	}
	if button.Via() != "" || len(button.Related()) != 0 {
		t.Error("no site or author account should be attributed")
	}
}

func TestShareButtonSkipsAuthorWhenSameAsSite(t *testing.T) {
	post := Post{Title: "T", AuthorUsername: "Site"}
	button := ShareButton(post, Options{Username: "Site"})

	if len(button.Related()) != 0 {
		t.Errorf("Related = %v, want none", button.Related())
	}
}

func TestOptionsValidation(t *testing.T) {
	options := Options{Username: "bad name", UserID: "12a", Lang: "EN", Theme: "dark", LinkColor: "#abc"}

	if options.SiteUsername() != "" {
		t.Error("invalid username should be dropped")
	}
	if options.SiteUserID() != "" {
		t.Error("invalid user ID should be dropped")
	}
	if options.Language() != "en" {
		t.Errorf("Language = %q", options.Language())
	}

	theme := options.ThemeDefaults()
	if theme.Theme() != "dark" || theme.LinkColor() != "AABBCC" {
		t.Errorf("ThemeDefaults = %s/%s", theme.Theme(), theme.LinkColor())
	}
}
