package generator

import (
	"strings"
	"testing"
)

func TestSplitChunks(t *testing.T) {
	text := strings.Repeat("abcde", 10) // 50 chars
	chunks := SplitChunks(text, 8)
	if got := strings.Join(chunks, ""); got != text {
		t.Errorf("concatenation mismatch: %q", got)
	}
	for i, c := range chunks {
		if c == "" {
			t.Errorf("chunk %d is empty", i)
		}
		if len([]rune(c)) > 8 {
			t.Errorf("chunk %d exceeds max: %d", i, len(c))
		}
	}
}

func TestSplitChunks_ExactMultiple(t *testing.T) {
	chunks := SplitChunks("abcdef", 3)
	if len(chunks) != 2 || chunks[0] != "abc" || chunks[1] != "def" {
		t.Errorf("got %v", chunks)
	}
}

func TestSplitChunks_ShortText(t *testing.T) {
	chunks := SplitChunks("hi", 100)
	if len(chunks) != 1 || chunks[0] != "hi" {
		t.Errorf("got %v", chunks)
	}
}

func TestSplitChunks_Empty(t *testing.T) {
	if chunks := SplitChunks("", 10); chunks != nil {
		t.Errorf("empty text should return nil, got %v", chunks)
	}
}

func TestSplitChunks_Multibyte(t *testing.T) {
	text := "日本語のテキストです"
	chunks := SplitChunks(text, 3)
	if strings.Join(chunks, "") != text {
		t.Error("multi-byte concatenation mismatch")
	}
	for _, c := range chunks {
		if len([]rune(c)) > 3 {
			t.Errorf("chunk %q exceeds 3 runes", c)
		}
	}
}
