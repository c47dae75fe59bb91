package page

import (
	"strings"
	"testing"
	"time"

	"github.com/pressarchive/newspaper-ocr/internal/llm"
)

func TestBuildNormalizesContentAndDate(t *testing.T) {
	t.Parallel()

	b := &Builder{}
	p := b.Build(llm.PageFields{
		SectionLetter: "A",
		SectionNumber: 1,
		SectionTitle:  "要聞",
		PublishedDate: "2023年5月10日",
		Content:       "政府昨日公布\n新措施。\n\n**市民反應**\n反應不一。",
	})

	want := "政府昨日公布新措施。\n\n**市民反應**\n反應不一。"
	if p.Content != want {
		t.Errorf("Content = %q, want %q", p.Content, want)
	}
	d, ok := p.PublishedDate.Date()
	if !ok {
		t.Fatalf("PublishedDate raw %q, want parsed", p.PublishedDate.String())
	}
	if d.Year() != 2023 || d.Month() != time.May || d.Day() != 10 {
		t.Errorf("PublishedDate = %v", d)
	}
}

func TestBuildAppliesScriptAfterReflow(t *testing.T) {
	t.Parallel()

	// the stub replaces the CJK full stop with a non-terminal comma; if it
	// ran before reflow the two sentences below would merge into one
	stub := func(s string) string { return strings.ReplaceAll(s, "。", ",") }
	b := &Builder{Script: stub}

	p := b.Build(llm.PageFields{
		SectionLetter: "A",
		SectionNumber: 1,
		SectionTitle:  "要聞",
		PublishedDate: "2023-05-10",
		Content:       "第一句。\n第二句。",
		Tables:        []llm.TableField{{CSVString: "甲。,乙", Caption: "表。"}},
		Images:        []llm.ImageField{{Description: "街景。", Caption: "旺角"}},
	})

	if p.Content != "第一句,\n第二句," {
		t.Errorf("Content = %q, want transform applied after reflow", p.Content)
	}
	if p.SectionTitle != "要聞" {
		t.Errorf("SectionTitle = %q", p.SectionTitle)
	}
	if p.Tables[0].CSVString != "甲,,乙" || p.Tables[0].Caption != "表," {
		t.Errorf("table not transformed: %+v", p.Tables[0])
	}
	if p.Images[0].Description != "街景," {
		t.Errorf("image not transformed: %+v", p.Images[0])
	}
}

func TestBuildRawDatePreserved(t *testing.T) {
	t.Parallel()

	b := &Builder{}
	p := b.Build(llm.PageFields{PublishedDate: "民國一一二年", Content: "x."})
	if p.PublishedDate.IsCalendar() {
		t.Fatal("expected raw date variant")
	}
	if p.PublishedDate.String() != "民國一一二年" {
		t.Errorf("raw date = %q, want input preserved", p.PublishedDate.String())
	}
}
