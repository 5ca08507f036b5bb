package widgets

import (
	"testing"
)

func TestProfileLimitSuppressesHeightRegardlessOfOrder(t *testing.T) {
	heightFirst, _ := NewProfile("@TwitterDev")
	heightFirst.SetHeight(600).SetLimit(5)
	heightFirst.AddChrome("noscrollbar", "noheader").SetAriaPolite("assertive")

	limitFirst, _ := NewProfile("TwitterDev")
	limitFirst.SetLimit(5).SetHeight(600)
	limitFirst.SetAriaPolite("assertive").AddChrome("noheader", "noscrollbar")

	for name, p := range map[string]*Profile{"height first": heightFirst, "limit first": limitFirst} {
		attrs := p.AttributeMap()
		if got := attrs.Query(); got != "screen-name=TwitterDev&tweet-limit=5&chrome=noheader" {
			t.Errorf("%s: AttributeMap = %q", name, got)
		}
		oembed := p.OEmbedParams()
		if oembed.Has("maxheight") || oembed.Has("aria_polite") {
			t.Errorf("%s: OEmbedParams should not contain maxheight or aria_polite: %q", name, oembed.Query())
		}
		if oembed.String("limit") != "5" {
			t.Errorf("%s: OEmbedParams limit = %q", name, oembed.String("limit"))
		}
		if got := p.CacheCodes(); got != "n5H" {
			t.Errorf("%s: CacheCodes = %q, want n5H", name, got)
		}
		if p.Height() != 600 {
			t.Errorf("%s: height should remain stored, got %d", name, p.Height())
		}
	}
}

func TestProfileWithoutLimit(t *testing.T) {
	p, _ := NewProfile("jack")
	p.SetWidth(500).SetHeight(400).SetAriaPolite("rude").SetTheme("dark")
	p.AddChrome("transparent", "noborders", "bogus", "NOFOOTER")

	wantAttrs := "screen-name=jack&width=500&height=400&chrome=nofooter+noborders+transparent&aria-polite=rude&theme=dark"
	if got := p.AttributeMap().Query(); got != wantAttrs {
		t.Errorf("AttributeMap = %q, want %q", got, wantAttrs)
	}

	wantOEmbed := "url=https%3A%2F%2Ftwitter.com%2Fjack&maxwidth=500&maxheight=400&chrome=nofooter+noborders+transparent&aria_polite=rude&theme=dark"
	if got := p.OEmbedParams().Query(); got != wantOEmbed {
		t.Errorf("OEmbedParams = %q, want %q", got, wantOEmbed)
	}

	if got := p.CacheCodes(); got != "w500h400FBTrd" {
		t.Errorf("CacheCodes = %q", got)
	}
	if p.DatasourceID() != "jack" || p.CacheTag() != "profile" {
		t.Errorf("unexpected cache identity %s/%s", p.CacheTag(), p.DatasourceID())
	}
}

func TestTimelineBounds(t *testing.T) {
	p, _ := NewProfile("jack")
	p.SetWidth(179).SetWidth(1201).SetHeight(199).SetLimit(0).SetLimit(21)

	if got := p.AttributeMap().Keys(); len(got) != 1 {
		t.Errorf("out of range values should be ignored, got keys %v", got)
	}

	p.SetWidth(180).SetWidth(1200).SetHeight(200).SetLimit(20)
	if p.Width() != 1200 || p.Height() != 200 || p.Limit() != 20 {
		t.Errorf("inclusive bounds should be accepted: %d %d %d", p.Width(), p.Height(), p.Limit())
	}
}

func TestTimelineFromMapRejectsStringNumerals(t *testing.T) {
	p, ok := ProfileFromMap(map[string]any{
		"screen_name": "jack",
		"width":       "300",
		"height":      "600",
		"limit":       "5",
	})
	if !ok {
		t.Fatal("ProfileFromMap failed")
	}
	if p.Width() != 0 || p.Height() != 0 || p.Limit() != 0 {
		t.Errorf("string numerals should be ignored: %d %d %d", p.Width(), p.Height(), p.Limit())
	}
}

func TestProfileFromMap(t *testing.T) {
	if _, ok := ProfileFromMap(map[string]any{"screen_name": "not valid!"}); ok {
		t.Error("invalid screen name should fail")
	}
	if _, ok := ProfileFromMap(map[string]any{}); ok {
		t.Error("missing screen name should fail")
	}

	p, ok := ProfileFromMap(map[string]any{
		"screen_name": "@jack",
		"chrome":      "noheader, nofooter",
		"limit":       3,
		"link_color":  "f0c",
	})
	if !ok {
		t.Fatal("ProfileFromMap failed")
	}
	want := "screen-name=jack&tweet-limit=3&chrome=noheader+nofooter&link-color=%23FF00CC"
	if got := p.AttributeMap().Query(); got != want {
		t.Errorf("AttributeMap = %q, want %q", got, want)
	}
}

func TestCollectionGridDropsFields(t *testing.T) {
	c, ok := CollectionFromMap(map[string]any{
		"id":           "393773266801659904",
		"widget_type":  "grid",
		"height":       600,
		"aria_polite":  "assertive",
		"theme":        "dark",
		"link_color":   "#FF0000",
		"border_color": "#00FF00",
		"chrome":       []string{"noheader", "nofooter", "noborders", "transparent"},
		"width":        400,
	})
	if !ok {
		t.Fatal("CollectionFromMap failed")
	}
	if !c.Grid() {
		t.Fatal("grid template should be selected")
	}

	forbidden := []string{"height", "maxheight", "aria-polite", "aria_polite", "theme", "link-color", "link_color", "border-color", "border_color"}
	attrs := c.AttributeMap()
	oembed := c.OEmbedParams()
	for _, key := range forbidden {
		if attrs.Has(key) || oembed.Has(key) {
			t.Errorf("grid serialization should not contain %q", key)
		}
	}

	if attrs.String("chrome") != "nofooter" || oembed.String("chrome") != "nofooter" {
		t.Errorf("grid chrome should be reduced to nofooter, got %q / %q", attrs.String("chrome"), oembed.String("chrome"))
	}
	if oembed.String("widget_type") != "grid" {
		t.Error("grid oEmbed parameters should carry widget_type=grid")
	}
	if got := c.CacheCodes(); got != "gw400F" {
		t.Errorf("CacheCodes = %q, want gw400F", got)
	}
}

func TestCollectionGridWithoutFooterChrome(t *testing.T) {
	c, _ := NewCollection("1")
	c.SetGrid(true)
	c.AddChrome("noheader", "noborders")

	if c.AttributeMap().Has("chrome") {
		t.Error("grid without nofooter should not serialize chrome")
	}
}

func TestCollectionNonGrid(t *testing.T) {
	c, _ := CollectionFromMap(map[string]any{"id": "1", "template": "list", "height": 400})

	if c.Grid() {
		t.Error("only grid selects the grid template")
	}
	if got := c.OEmbedParams().Query(); got != "url=https%3A%2F%2Ftwitter.com%2F_%2Ftimelines%2F1&maxheight=400" {
		t.Errorf("OEmbedParams = %q", got)
	}
}

func TestSearchHasNoOEmbed(t *testing.T) {
	s, ok := SearchFromMap(map[string]any{
		"widget_id": "600720083413962752",
		"terms":     "  #golang  ",
		"limit":     5,
	})
	if !ok {
		t.Fatal("SearchFromMap failed")
	}

	if s.OEmbedParams().Len() != 0 {
		t.Error("search OEmbedParams should be empty")
	}
	var w Widget = s
	if _, ok := w.(OEmbedder); ok {
		t.Error("search timeline should not implement OEmbedder")
	}

	want := "widget-id=600720083413962752&search-query=%23golang&tweet-limit=5"
	if got := s.AttributeMap().Query(); got != want {
		t.Errorf("AttributeMap = %q, want %q", got, want)
	}
}

func TestSearchQueryLength(t *testing.T) {
	s, _ := NewSearch("1")
	long := make([]rune, 501)
	for i := range long {
		long[i] = 'a'
	}
	s.SetQuery(string(long))
	if s.Query() != "" {
		t.Error("queries over 500 characters should be ignored")
	}
	s.SetQuery(string(long[:500]))
	if len(s.Query()) != 500 {
		t.Error("500 character query should be accepted")
	}
}

func TestListVariants(t *testing.T) {
	byID, ok := ListFromMap(map[string]any{"list_id": "84839422", "owner_screen_name": "ignored", "slug": "ignored"})
	if !ok {
		t.Fatal("ListFromMap by id failed")
	}
	if got := byID.AttributeMap().Query(); got != "list-id=84839422" {
		t.Errorf("AttributeMap = %q", got)
	}
	if byID.OEmbedURL() != "https://twitter.com/i/lists/84839422" {
		t.Errorf("OEmbedURL = %q", byID.OEmbedURL())
	}

	bySlug, ok := ListFromMap(map[string]any{"owner_screen_name": "@NASA", "slug": "Astronauts"})
	if !ok {
		t.Fatal("ListFromMap by slug failed")
	}
	if got := bySlug.AttributeMap().Query(); got != "list-owner-screen-name=NASA&list-slug=Astronauts" {
		t.Errorf("AttributeMap = %q", got)
	}
	if bySlug.OEmbedURL() != "https://twitter.com/NASA/lists/Astronauts" {
		t.Errorf("OEmbedURL = %q", bySlug.OEmbedURL())
	}
	if bySlug.DatasourceID() != "nasa_astronauts" {
		t.Errorf("DatasourceID = %q", bySlug.DatasourceID())
	}

	if _, ok := ListFromMap(map[string]any{"owner_screen_name": "NASA", "slug": "9lives"}); ok {
		t.Error("invalid slug should fail")
	}
	if _, ok := ListFromMap(map[string]any{"slug": "astronauts"}); ok {
		t.Error("missing owner should fail")
	}
}
