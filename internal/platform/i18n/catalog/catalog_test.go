package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if !bundle.HasLocale(BaseLocale) {
		t.Fatalf("expected base locale %s", BaseLocale)
	}
	if !bundle.HasLocale("pt-BR") {
		t.Fatalf("expected locale pt-BR")
	}
	if got := bundle.Locales(); len(got) != 2 {
		t.Fatalf("Locales() = %v, want two locales", got)
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	bundle := Default()

	got, ok := bundle.Message("fr-FR", "solve.placeholder")
	if !ok || got != "No response yet." {
		t.Fatalf("Message(fr-FR) = %q, %t, want base locale text", got, ok)
	}
	got, ok = bundle.Message("pt-BR", "errors.empty_equation")
	if !ok || got != "Por favor, insira uma equação." {
		t.Fatalf("Message(pt-BR) = %q, %t", got, ok)
	}
	if _, ok := bundle.Message("en-US", "missing.key"); ok {
		t.Fatal("expected missing key lookup to fail")
	}
}

func TestRegisteredMessagesResolveThroughPrinter(t *testing.T) {
	Default()

	if got := message.NewPrinter(language.MustParse("en-US")).Sprintf("errors.empty_equation"); got != "Please enter an equation." {
		t.Fatalf("en-US printer = %q", got)
	}
	if got := message.NewPrinter(language.MustParse("pt")).Sprintf("solve.submit"); got != "Resolver" {
		t.Fatalf("pt printer = %q, want base language registration", got)
	}
}

func TestLoadFromFSRejectsKeyOutsideNamespace(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/solve.yaml"), `locale: "en-US"
namespace: "solve"
messages:
  "errors.bad": "nope"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected namespace prefix error")
	}
}

func TestLoadFromFSRejectsMissingTranslations(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/solve.yaml"), `locale: "en-US"
namespace: "solve"
messages:
  "solve.a": "a"
  "solve.b": "b"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-BR/solve.yaml"), `locale: "pt-BR"
namespace: "solve"
messages:
  "solve.a": "a"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected missing key error")
	}
}

func TestLoadFromFSRejectsLocaleMismatch(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/solve.yaml"), `locale: "pt-BR"
namespace: "solve"
messages:
  "solve.a": "a"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected locale mismatch error")
	}
}

func TestParseCatalogFileHandlesEscapes(t *testing.T) {
	file, err := parseCatalogFile([]byte(`# comment
locale: "en-US"
namespace: "solve"
messages:
  "solve.quote": "say \"hi\": now"
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := file.Messages["solve.quote"]; got != `say "hi": now` {
		t.Fatalf("message = %q", got)
	}
}

func TestParseCatalogFileRejectsMalformedEntries(t *testing.T) {
	for _, body := range []string{
		"locale: \"en-US\"\nnamespace: \"solve\"\nmessages:\n  \"solve.a\" \"b\"\n",
		"locale: \"en-US\"\nnamespace: \"solve\"\nmessages:\n  solve.a: \"b\"\n",
		"locale: \"en-US\"\nnamespace: \"solve\"\n  \"solve.a\": \"b\"\n",
		"namespace: \"solve\"\nmessages:\n  \"solve.a\": \"b\"\n",
	} {
		if _, err := parseCatalogFile([]byte(body)); err == nil {
			t.Fatalf("expected error for %q", body)
		}
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
