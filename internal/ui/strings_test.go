package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/five82/stories/internal/catalog"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hello...", truncate("hello world", 8))
	assert.Equal(t, "abc", truncate("abcd", 3))
	assert.Equal(t, "日本...", truncate("日本語テスト", 5))
}

func TestTruncateMiddle(t *testing.T) {
	assert.Equal(t, "", truncateMiddle("  ", 10))
	assert.Equal(t, "ab", truncateMiddle("abcd", 2))
	got := truncateMiddle("/home/user/.local/state/stories/stories.log", 20)
	assert.Len(t, []rune(got), 20)
	assert.Contains(t, got, "…")
	assert.True(t, len(got) > 0 && got[0] == '/')
}

func TestFit(t *testing.T) {
	assert.Equal(t, "ab   ", fit("ab", 5))
	assert.Equal(t, "ab...", fit("abcdefgh", 5))
	assert.Equal(t, "", fit("abc", 0))
}

func TestColumnWidths(t *testing.T) {
	cols := catalog.Stories.Columns // title flexible, author 18, comments 9, points 7

	wide := columnWidths(cols, 100)
	assert.Equal(t, []int{63, 18, 9, 7}, wide)

	compact := columnWidths(cols, 40)
	assert.Equal(t, []int{40, 0, 0, 0}, compact, "compact layouts keep only the title")

	fixed := columnWidths([]catalog.Column{{Field: "a", Width: 4}}, 100)
	assert.Equal(t, []int{4}, fixed)
}

func TestCheckLink(t *testing.T) {
	assert.NoError(t, checkLink("https://example.com/a"))
	assert.NoError(t, checkLink("http://example.com"))
	assert.Error(t, checkLink("file:///etc/passwd"))
	assert.Error(t, checkLink("javascript:alert(1)"))
	assert.Error(t, checkLink("://bad"))
}
