package extract

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractBytes_Plain(t *testing.T) {
	e := NewExtractor()
	text, err := e.ExtractBytes([]byte("hello world"), ".txt")
	if err != nil || text != "hello world" {
		t.Errorf("got %q, %v", text, err)
	}
}

func TestExtractBytes_InvalidUTF8(t *testing.T) {
	e := NewExtractor()
	text, err := e.ExtractBytes([]byte{'h', 'i', 0xff}, ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if !strings.HasPrefix(text, "hi") {
		t.Errorf("got %q", text)
	}
}

func TestExtractBytes_UnknownExtFallsBackToPlain(t *testing.T) {
	e := NewExtractor()
	text, err := e.ExtractBytes([]byte("plain enough"), ".log")
	if err != nil || text != "plain enough" {
		t.Errorf("got %q, %v", text, err)
	}
}

func TestExtractBytes_DOCX(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = w.Write([]byte(`<w:document><w:p w:rsidR="x"><w:r><w:t>Paris is</w:t></w:r>` +
		`<w:r><w:t xml:space="preserve">the capital.</w:t></w:r></w:p></w:document>`))
	_ = zw.Close()

	e := NewExtractor()
	text, err := e.ExtractBytes(buf.Bytes(), ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if text != "Paris is the capital." {
		t.Errorf("got %q", text)
	}
}

func TestExtractBytes_DOCXNotAZip(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBytes([]byte("nope"), ".docx"); err == nil {
		t.Error("expected error for invalid docx")
	}
}

func TestExtract_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("file content"), 0600); err != nil {
		t.Fatal(err)
	}
	e := NewExtractor()
	text, err := e.Extract(path)
	if err != nil || text != "file content" {
		t.Errorf("got %q, %v", text, err)
	}
	if _, err := e.Extract(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
