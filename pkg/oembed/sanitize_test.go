package oembed

import "testing"

func TestStripScripts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no script is untouched",
			input: `<blockquote class="twitter-tweet" data-lang="en"><p lang="en">Hi &amp; bye</p></blockquote>`,
			want:  `<blockquote class="twitter-tweet" data-lang="en"><p lang="en">Hi &amp; bye</p></blockquote>`,
		},
		{
			name:  "trailing script removed",
			input: `<blockquote><p>Hi</p></blockquote>` + "\n" + `<script async src="https://platform.twitter.com/widgets.js" charset="utf-8"></script>`,
			want:  `<blockquote><p>Hi</p></blockquote>`,
		},
		{
			name:  "nested uppercase script removed",
			input: `<div><SCRIPT>alert(1)</SCRIPT><p>ok</p></div>`,
			want:  `<div><p>ok</p></div>`,
		},
		{
			name:  "only script",
			input: `<script>x()</script>`,
			want:  ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripScripts(tt.input); got != tt.want {
				t.Errorf("StripScripts = %q, want %q", got, tt.want)
			}
		})
	}
}
