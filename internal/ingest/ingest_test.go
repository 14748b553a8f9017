package ingest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

type zipEntry struct {
	name string
	body string
}

func buildZip(t *testing.T, entries []zipEntry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "surveys.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	for _, e := range entries {
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(e.body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUnzip(t *testing.T) {
	src := buildZip(t, []zipEntry{
		{"form1.pdf", "%PDF-1.4 one"},
		{"batch2/form2.pdf", "%PDF-1.4 two"},
		{"batch2/notes.txt", "not a survey"},
	})
	dst := filepath.Join(t.TempDir(), "extracted")

	n, err := Unzip(src, dst)
	if err != nil {
		t.Fatalf("Unzip() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Unzip() count = %d, want 3", n)
	}

	got, err := os.ReadFile(filepath.Join(dst, "batch2", "form2.pdf"))
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if string(got) != "%PDF-1.4 two" {
		t.Errorf("extracted content = %q, want %q", got, "%PDF-1.4 two")
	}
}

func TestUnzipRejectsEscapingEntry(t *testing.T) {
	src := buildZip(t, []zipEntry{
		{"ok.pdf", "fine"},
		{"../evil.txt", "escape attempt"},
	})
	dst := filepath.Join(t.TempDir(), "extracted")

	if _, err := Unzip(src, dst); err == nil {
		t.Fatal("Unzip() error = nil, want zip-slip rejection")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dst), "evil.txt")); !os.IsNotExist(err) {
		t.Error("escaping entry was written outside the extraction dir")
	}
}

func TestUnzipMissingArchive(t *testing.T) {
	if _, err := Unzip(filepath.Join(t.TempDir(), "nope.zip"), t.TempDir()); err == nil {
		t.Error("Unzip() error = nil, want error for missing archive")
	}
}

func TestFindDocuments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.pdf")
	writeFile(t, root, "sub/a.PDF")
	writeFile(t, root, "sub/skip.txt")
	writeFile(t, root, ".hidden/inner.pdf")
	writeFile(t, root, "sub/._resource.pdf")

	docs, err := FindDocuments(root)
	if err != nil {
		t.Fatalf("FindDocuments() error = %v", err)
	}

	want := []string{"b.pdf", "sub/a.PDF"}
	if len(docs) != len(want) {
		t.Fatalf("found %d documents %v, want %d", len(docs), docs, len(want))
	}
	for i, rel := range want {
		if docs[i].RelPath != rel {
			t.Errorf("docs[%d].RelPath = %q, want %q", i, docs[i].RelPath, rel)
		}
		if docs[i].ID == "" {
			t.Errorf("docs[%d].ID is empty", i)
		}
	}
}

func TestFindDocumentsEmpty(t *testing.T) {
	docs, err := FindDocuments(t.TempDir())
	if err != nil {
		t.Fatalf("FindDocuments() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("found %d documents in empty dir, want 0", len(docs))
	}
}

func TestDocumentID(t *testing.T) {
	id1 := DocumentID("batch 1/form (final).pdf")
	id2 := DocumentID("batch 1/form (final).pdf")
	if id1 != id2 {
		t.Errorf("DocumentID not stable: %q vs %q", id1, id2)
	}

	shape := regexp.MustCompile(`^[a-zA-Z0-9._-]+-[0-9a-f]{12}$`)
	if !shape.MatchString(id1) {
		t.Errorf("DocumentID %q does not match slug-hash shape", id1)
	}
}

func TestDocumentIDCollisionFree(t *testing.T) {
	// Both flatten to the slug "a_b"; the hash suffix must keep them apart.
	a := DocumentID("a_b.pdf")
	b := DocumentID("a/b.pdf")
	if a == b {
		t.Errorf("DocumentID(a_b.pdf) == DocumentID(a/b.pdf) = %q, want distinct", a)
	}
}

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
}
