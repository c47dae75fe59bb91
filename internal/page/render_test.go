package page

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	t.Parallel()

	p := validPage()
	p.Author = "陳大文"
	p.Tables = []TableContent{{CSVString: "日期,恒指\n5月10日,19500", Caption: "市況"}}
	p.Images = []ImageContent{{Description: "港島街景", Caption: "中環"}}

	out := p.Render()

	for _, want := range []string{
		"=====METADATA=====",
		"Page Section Letter: A",
		"Page Section Number: 12",
		"Published Date: 2023-05-10",
		"Author: 陳大文",
		"=====CONTENT=====",
		"Content: 政府昨日公布新措施。",
		"=====TABLES=====",
		"Table 1 Content:\n日期,恒指\n5月10日,19500",
		"Table 1 Caption: 市況",
		"=====IMAGES=====",
		"Image 1 Description: 港島街景",
		"Image 1 Caption: 中環",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderEmptySectionsKeepBanners(t *testing.T) {
	t.Parallel()

	out := validPage().Render()
	if !strings.Contains(out, "=====TABLES=====") || !strings.Contains(out, "=====IMAGES=====") {
		t.Errorf("banners must appear even with no tables/images:\n%s", out)
	}
}
