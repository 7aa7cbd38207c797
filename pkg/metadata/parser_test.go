package metadata

import (
	"reflect"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		build    func(b *Block)
		expected string
	}{
		{
			name: "ordered fields",
			build: func(b *Block) {
				b.Set("title", "Untitled")
				b.Set("date", "2023-05-01")
				b.Set("tags", []string{"red", "blue"})
			},
			expected: "---\ntitle: \"Untitled\"\ndate: \"2023-05-01\"\ntags: [\"red\", \"blue\"]\n---\n",
		},
		{
			name: "nil values dropped",
			build: func(b *Block) {
				b.Set("title", "A")
				b.Set("series", nil)
			},
			expected: "---\ntitle: \"A\"\n---\n",
		},
		{
			name: "kept nil rendered as null",
			build: func(b *Block) {
				b.Set("title", "A")
				b.SetKept("catalogue_date", nil)
			},
			expected: "---\ntitle: \"A\"\ncatalogue_date: null\n---\n",
		},
		{
			name: "replacing a key keeps its position",
			build: func(b *Block) {
				b.Set("title", "First")
				b.Set("date", "2020-01-01")
				b.Set("title", "Second")
			},
			expected: "---\ntitle: \"Second\"\ndate: \"2020-01-01\"\n---\n",
		},
		{
			name:     "empty block",
			build:    func(b *Block) {},
			expected: "---\n---\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBlock()
			tt.build(b)
			if got := Format(b); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBlock_Keys(t *testing.T) {
	b := NewBlock()
	b.Set("title", "A")
	b.Set("series", nil)
	b.SetKept("tags", nil)

	want := []string{"title", "tags"}
	if got := b.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	if _, ok := b.Get("series"); !ok {
		t.Error("expected series to be stored even though it is not emitted")
	}
}

func TestParse(t *testing.T) {
	content := `---
title: "He said \"hi\""
date: "2023-05-01"
layout: "theme"
work_id: "00361"
catalogue_date: null
tags: ["red", "blue"]
---
Some notes
`
	header, body, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if header.Title != `He said "hi"` {
		t.Errorf("Title = %q", header.Title)
	}
	if header.WorkID != "00361" {
		t.Errorf("WorkID = %q, want 00361", header.WorkID)
	}
	if header.CatalogueDate != nil {
		t.Errorf("CatalogueDate = %v, want nil", *header.CatalogueDate)
	}
	if !reflect.DeepEqual(header.Tags, []string{"red", "blue"}) {
		t.Errorf("Tags = %v", header.Tags)
	}
	if strings.TrimSpace(string(body)) != "Some notes" {
		t.Errorf("body = %q", body)
	}
	if errs := header.Validate(); len(errs) != 0 {
		t.Errorf("unexpected validation errors: %v", errs)
	}
}

func TestParse_RoundTripsFormat(t *testing.T) {
	b := NewBlock()
	b.Set("title", "Back\\slash \"quoted\"\nsecond line")
	b.Set("date", "2024-03-05")
	b.Set("work_id", "00001")

	header, _, err := Parse([]byte(Format(b) + "\nbody\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if header.Title != "Back\\slash \"quoted\"\nsecond line" {
		t.Errorf("Title did not survive round trip: %q", header.Title)
	}
}

func TestParse_MissingDelimiter(t *testing.T) {
	if _, _, err := Parse([]byte("title: nope\n")); err == nil {
		t.Fatal("expected error for content without front matter")
	}
}

func TestHeader_Validate(t *testing.T) {
	h := &Header{Title: " "}
	errs := h.Validate()
	if len(errs) != 3 {
		t.Fatalf("expected 3 validation errors, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != "title" {
		t.Errorf("first error field = %q, want title", errs[0].Field)
	}
}
