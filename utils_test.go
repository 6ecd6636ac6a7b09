package main

import "testing"

func TestPasteText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"newlines folded", "one\ntwo\r\nthree", "one two three"},
		{"tabs and runs of spaces", "a\t\tb   c", "a b c"},
		{"control characters dropped", "a\x00b\x07c", "abc"},
		{"html", "<html><body><p>Fish &amp; chips</p></body></html>", "Fish & chips"},
		{"rtf", `{\rtf1\ansi\deff0 Hello\par World}`, "Hello World"},
		{"rtf escapes", `{\rtf1 a\{b\}c}`, "a{b}c"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pasteText(tt.in); got != tt.want {
				t.Errorf("pasteText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClipboardFormatDetection(t *testing.T) {
	if !isRTF(`{\rtf1 x}`) || isRTF("plain") {
		t.Error("isRTF misdetects")
	}
	if !isHTML("  <div>x</div>") || isHTML("a < b") {
		t.Error("isHTML misdetects")
	}
}
