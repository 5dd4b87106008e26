package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gipcrawl/pkg/utils"
)

func TestSitemap(t *testing.T) {
	page := `<div class="sitemap"><ul class="mapTree">
		<li><a href="/about">1. 關於本署</a></li>
		<li><a href="news?mp=9997">1.1 最新消息</a></li>
		<li><a href="/weird">no numbering here</a></li>
		<li><a href="/gallery">2 影音專區</a></li>
	</ul></div>`

	links, err := Sitemap(mustDoc(t, page), "https://a.tw/wSite/sitemap", newDiscardEntry())
	require.NoError(t, err)
	require.Len(t, links, 3)

	assert.Equal(t, "關於本署", links[0].Name)
	assert.Equal(t, "https://a.tw/about", links[0].URL)
	assert.Equal(t, "最新消息", links[1].Name)
	assert.Equal(t, "https://a.tw/wSite/news?mp=9997", links[1].URL)
	assert.Equal(t, "影音專區", links[2].Name)
}

func TestSitemapMissingTree(t *testing.T) {
	_, err := Sitemap(mustDoc(t, `<p>no sitemap</p>`), "https://a.tw/sitemap", newDiscardEntry())
	assert.ErrorIs(t, err, utils.ErrParsing)
}
