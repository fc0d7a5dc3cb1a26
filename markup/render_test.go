package markup

import (
	"testing"

	"github.com/iw2rmb/mentionpad/buffer"
)

func TestRender_EmptyDocument(t *testing.T) {
	if got := Render(nil); got != Empty {
		t.Fatalf("Render(nil): got %q, want %q", got, Empty)
	}
	if got := Render([][]buffer.Run{nil}); got != Empty {
		t.Fatalf("Render(empty line): got %q, want %q", got, Empty)
	}
}

func TestRender_FormatsAndMentions(t *testing.T) {
	lines := [][]buffer.Run{
		{
			{Text: "Hi "},
			{Text: "@Alice", Format: buffer.Format{Bold: true, Mention: "Alice"}},
			{Text: " ", Format: buffer.Format{Bold: true}},
		},
		nil,
		{
			{Text: "a<b>&", Format: buffer.Format{Italic: true, Underline: true, Strike: true}},
		},
	}

	got := Render(lines)
	want := `<p>Hi <span class="mention" data-value="Alice"><strong>@Alice</strong></span><strong> </strong></p>` +
		`<p><br></p>` +
		`<p><em><u><s>a&lt;b&gt;&amp;</s></u></em></p>`
	if got != want {
		t.Fatalf("Render:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_EscapesMentionValue(t *testing.T) {
	got := Render([][]buffer.Run{{{Text: "@x", Format: buffer.Format{Mention: `a"b`}}}})
	want := `<p><span class="mention" data-value="a&#34;b">@x</span></p>`
	if got != want {
		t.Fatalf("Render:\n got: %q\nwant: %q", got, want)
	}
}
