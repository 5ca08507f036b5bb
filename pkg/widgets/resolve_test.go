package widgets

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		url        string
		wantKind   string
		wantSource string
	}{
		{"https://twitter.com/jack/status/20", KindTweet, "20"},
		{"https://x.com/jack/status/20?s=20", KindTweet, "20"},
		{"https://mobile.twitter.com/jack/statuses/20", KindTweet, "20"},
		{"https://twitter.com/i/web/status/20", KindTweet, "20"},
		{"https://twitter.com/i/moments/650667182356082688", KindMoment, "650667182356082688"},
		{"https://twitter.com/TwitterDev/timelines/393773266801659904", KindCollection, "393773266801659904"},
		{"https://twitter.com/NASA/lists/astronauts", KindList, "nasa_astronauts"},
		{"https://twitter.com/i/lists/84839422", KindList, "84839422"},
		{"https://www.twitter.com/TwitterDev", KindProfile, "twitterdev"},
		{"https://vine.co/v/bjHh0zHdgZT", KindVine, "bjHh0zHdgZT"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			w, ok := Resolve(tt.url)
			if !ok {
				t.Fatalf("Resolve(%q) failed", tt.url)
			}
			if w.Kind() != tt.wantKind {
				t.Errorf("Kind = %q, want %q", w.Kind(), tt.wantKind)
			}
			o, ok := w.(OEmbedder)
			if !ok {
				t.Fatalf("%s should implement OEmbedder", w.Kind())
			}
			if o.DatasourceID() != tt.wantSource {
				t.Errorf("DatasourceID = %q, want %q", o.DatasourceID(), tt.wantSource)
			}
		})
	}
}

func TestResolvePeriscope(t *testing.T) {
	w, ok := Resolve("https://www.periscope.tv/periscopeco")
	if !ok || w.Kind() != KindPeriscope {
		t.Fatalf("Resolve periscope = %v, %v", w, ok)
	}
}

func TestResolveRejects(t *testing.T) {
	for _, raw := range []string{
		"",
		"https://example.com/jack/status/20",
		"https://twitter.com/",
		"https://twitter.com/search?q=golang",
		"https://twitter.com/jack/status/abc",
		"https://twitter.com/jack/likes",
		"https://twitter.com/i/moments",
		"ftp://twitter.com/jack",
		"https://vine.co/u/123",
		"https://www.periscope.tv/w/1vAxRdvVWNYJl",
		"https://www.pscp.tv/W/1vAxRdvVWNYJl",
		"https://www.periscope.tv/about",
	} {
		if w, ok := Resolve(raw); ok {
			t.Errorf("Resolve(%q) = %s, want failure", raw, w.Kind())
		}
	}
}
