package markdown

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

func TestParseFrontMatter_YAML(t *testing.T) {
	source := []byte(`---
title: Hello World
date: "2024-01-01"
weight: 3
extra:
  link_to: https://example.com
  gallery:
    - a.jpg
    - b.jpg
---
# Heading

Body text.
`)

	fm, body, format, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if format != interfaces.FrontMatterYAML {
		t.Fatalf("expected yaml format, got %q", format)
	}
	if fm["title"] != "Hello World" {
		t.Fatalf("unexpected title: %#v", fm["title"])
	}
	if fm["date"] != "2024-01-01" {
		t.Fatalf("unexpected date: %#v", fm["date"])
	}
	extra, ok := fm["extra"].(map[string]any)
	if !ok {
		t.Fatalf("expected extra to normalize to map[string]any, got %T", fm["extra"])
	}
	if extra["link_to"] != "https://example.com" {
		t.Fatalf("unexpected link_to: %#v", extra["link_to"])
	}
	if gallery, ok := extra["gallery"].([]any); !ok || len(gallery) != 2 {
		t.Fatalf("unexpected gallery: %#v", extra["gallery"])
	}
	if !strings.Contains(string(body), "# Heading") || strings.Contains(string(body), "title:") {
		t.Fatalf("body not split correctly: %q", string(body))
	}
}

func TestParseFrontMatter_TOML(t *testing.T) {
	source := []byte(`+++
title = "Camera Roll"
date = 2023-05-06
weight = 2

[extra]
remote_image = "https://images.example.com/roll.jpg"
+++
Shot on film.
`)

	fm, body, format, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if format != interfaces.FrontMatterTOML {
		t.Fatalf("expected toml format, got %q", format)
	}
	if fm["title"] != "Camera Roll" {
		t.Fatalf("unexpected title: %#v", fm["title"])
	}
	if _, ok := fm["date"].(time.Time); !ok {
		t.Fatalf("expected TOML local date to decode as time.Time, got %T", fm["date"])
	}
	if fm["weight"] != int64(2) {
		t.Fatalf("unexpected weight: %#v (%T)", fm["weight"], fm["weight"])
	}
	extra, ok := fm["extra"].(map[string]any)
	if !ok || extra["remote_image"] != "https://images.example.com/roll.jpg" {
		t.Fatalf("unexpected extra: %#v", fm["extra"])
	}
	if strings.TrimSpace(string(body)) != "Shot on film." {
		t.Fatalf("unexpected body: %q", string(body))
	}
}

func TestParseFrontMatter_NoFrontMatter(t *testing.T) {
	source := []byte("Just a body.\n")

	fm, body, format, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if format != interfaces.FrontMatterNone {
		t.Fatalf("expected no format, got %q", format)
	}
	if len(fm) != 0 {
		t.Fatalf("expected empty frontmatter, got %#v", fm)
	}
	if string(body) != "Just a body.\n" {
		t.Fatalf("expected body to be the whole file, got %q", string(body))
	}
}

func TestParseFrontMatter_InvalidTOML(t *testing.T) {
	source := []byte("+++\ntitle = \n+++\nbody\n")

	if _, _, _, err := ParseFrontMatter(source); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestParseFrontMatter_UnclosedBlock(t *testing.T) {
	cases := map[string]string{
		"yaml":      "---\ntitle: My Post\ndate: 2024-01-01\n\nHello body\n",
		"toml":      "+++\ntitle = \"My Post\"\n\nHello body\n",
		"crlf yaml": "---\r\ntitle: My Post\r\nHello body\r\n",
	}
	for name, source := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, _, err := ParseFrontMatter([]byte(source))
			if !errors.Is(err, ErrFrontMatterUnclosed) {
				t.Fatalf("expected ErrFrontMatterUnclosed, got %v", err)
			}
		})
	}
}

func TestParseFrontMatter_ClosedWithCRLF(t *testing.T) {
	source := []byte("---\r\ntitle: Windows\r\n---\r\nbody\r\n")

	fm, _, format, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if format != interfaces.FrontMatterYAML {
		t.Fatalf("expected yaml format, got %q", format)
	}
	if fm["title"] != "Windows" {
		t.Fatalf("unexpected title: %#v", fm["title"])
	}
}

func TestNormalizeValue_ConvertsInterfaceKeyedMaps(t *testing.T) {
	value := normalizeValue(map[any]any{
		1:      "one",
		"nest": map[any]any{"k": []any{map[any]any{"x": 1}}},
	})

	out, ok := value.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", value)
	}
	if out["1"] != "one" {
		t.Fatalf("expected numeric key to be stringified, got %#v", out)
	}
	nest := out["nest"].(map[string]any)
	list := nest["k"].([]any)
	if _, ok := list[0].(map[string]any); !ok {
		t.Fatalf("expected nested list items to normalize, got %T", list[0])
	}
}
