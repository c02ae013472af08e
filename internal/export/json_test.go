package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/notegen/internal/checksum"
	"github.com/starford/notegen/internal/models"
	"github.com/starford/notegen/internal/storage"
)

func sampleConfig() *models.Config {
	return &models.Config{Notes: []models.NoteRecord{
		{ID: "alpha", Title: "Alpha", Tags: []string{"x"}, File: "notes/a.md", Links: []string{"beta"}},
		{ID: "b", Title: "b", File: "notes/b.md"},
	}}
}

func TestEncodeJSON_Layout(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, sampleConfig()); err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	want := `{
  "notes": [
    {
      "id": "alpha",
      "title": "Alpha",
      "tags": [
        "x"
      ],
      "file": "notes/a.md",
      "links": [
        "beta"
      ]
    },
    {
      "id": "b",
      "title": "b",
      "tags": [],
      "file": "notes/b.md",
      "links": []
    }
  ]
}
`
	if buf.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestEncodeJSON_EmptyNotes(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, &models.Config{}); err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	if buf.String() != "{\n  \"notes\": []\n}\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestEncodeJSON_NonASCIILiteral(t *testing.T) {
	cfg := &models.Config{Notes: []models.NoteRecord{
		{ID: "réseau", Title: "Réseaux <neurones> & IA", File: "notes/réseau.md"},
	}}
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, cfg); err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"title": "Réseaux <neurones> & IA"`) {
		t.Errorf("non-ASCII or HTML characters were escaped:\n%s", out)
	}
	if strings.Contains(out, `\u`) {
		t.Errorf("unexpected unicode escape:\n%s", out)
	}

	var decoded models.Config
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Notes[0].ID != "réseau" {
		t.Errorf("id = %q", decoded.Notes[0].ID)
	}
}

func TestWriteJSON_ReplacesAndChecksums(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "config.json"), []byte(`{"stale": true, "padding": "................"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}

	sum, err := WriteJSON(store, "config.json", sampleConfig())
	if err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale") {
		t.Error("previous content should be fully replaced")
	}
	if sum != checksum.Sum(data) {
		t.Errorf("checksum = %s, want %s", sum, checksum.Sum(data))
	}

	again, err := WriteJSON(store, "config.json", sampleConfig())
	if err != nil {
		t.Fatalf("second WriteJSON: %v", err)
	}
	if again != sum {
		t.Error("identical input should produce byte-identical output")
	}
}
