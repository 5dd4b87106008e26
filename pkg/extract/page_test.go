package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gipcrawl/pkg/models"
)

func TestIsLeaf(t *testing.T) {
	assert.True(t, IsLeaf(mustDoc(t, `<div class="cp"><p>content</p></div>`)))
	assert.False(t, IsLeaf(mustDoc(t, `<div class="list"><ul></ul></div>`)))
}

func TestPageInfoPageValuesWin(t *testing.T) {
	page := `
		<title>Page Title</title>
		<div class="friendly"><div class="path">現在位置:首頁 > 業務 > 公告</div></div>
		<ul class="info">
			<li>點閱率：<span>123</span></li>
			<li>更新日期：<span>2021-07-15</span></li>
		</ul>
		<div class="cp"><p>body</p></div>`

	link := models.Link{Name: "公告事項", Category: "stale", Date: "2019-01-01"}
	rec := PageInfo(mustDoc(t, page), "https://a.tw/p", link)

	assert.Equal(t, "公告事項", rec.Name)
	assert.Equal(t, "https://a.tw/p", rec.URL)
	assert.Equal(t, "首頁>業務>公告", rec.Category)
	assert.Equal(t, "2021-07-15", rec.Date)
	assert.True(t, rec.IsLeaf)
}

func TestPageInfoFallsBackToCallerValues(t *testing.T) {
	page := `<title>Fallback Title</title><p>nothing else</p>`

	link := models.Link{Category: "首頁>其他", Date: "2018-12-31"}
	rec := PageInfo(mustDoc(t, page), "https://a.tw/p", link)

	assert.Equal(t, "Fallback Title", rec.Name)
	assert.Equal(t, "首頁>其他", rec.Category)
	assert.Equal(t, "2018-12-31", rec.Date)
	assert.False(t, rec.IsLeaf)
}

func TestPageInfoBlankNameUsesTitle(t *testing.T) {
	page := `<title> Trimmed Title </title>`
	rec := PageInfo(mustDoc(t, page), "https://a.tw/p", models.Link{Name: "   "})
	assert.Equal(t, "Trimmed Title", rec.Name)
}

func TestBreadcrumbCategoryTooShort(t *testing.T) {
	// Nothing left after the current-location prefix.
	doc := mustDoc(t, `<div class="friendly"><div class="path">現在位置:</div></div>`)
	assert.Empty(t, breadcrumbCategory(doc))
}

func TestResolveHref(t *testing.T) {
	tests := []struct {
		name string
		base string
		href string
		want string
	}{
		{"relative path", "https://a.tw/dir/page", "other", "https://a.tw/dir/other"},
		{"root relative", "https://a.tw/dir/page", "/top", "https://a.tw/top"},
		{"absolute", "https://a.tw/dir/page", "https://b.tw/x", "https://b.tw/x"},
		{"surrounding whitespace", "https://a.tw/p", " /x ", "https://a.tw/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveHref(tt.base, tt.href)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
