package review_test

import (
	"strings"
	"testing"

	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStars(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{rating: 3, want: "★★★☆☆"},
		{rating: 5, want: "★★★★★"},
		{rating: 1, want: "★☆☆☆☆"},
		{rating: 0, want: "☆☆☆☆☆"},
		{rating: -2, want: "☆☆☆☆☆"},
		{rating: 12, want: "★★★★★"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, review.Stars(domain.Review{Rating: tt.rating}), "rating %d", tt.rating)
	}
}

func TestRenderList(t *testing.T) {
	html, err := review.RenderList([]domain.Review{
		{Name: "Asha", Rating: 3, Text: "Fits well"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(html, "★"))
	assert.Equal(t, 2, strings.Count(html, "☆"))
	assert.Contains(t, html, "<strong>Asha</strong>")
	assert.Contains(t, html, "Fits well")
}

func TestRenderListEscapesUntrustedInput(t *testing.T) {
	html, err := review.RenderList([]domain.Review{
		{
			Name:   `<script>alert("x")</script>`,
			Rating: 4,
			Text:   `<img src=x onerror=alert(1)> & more`,
		},
	})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<img")
	assert.Contains(t, html, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;")
	assert.Contains(t, html, "&lt;img src=x onerror=alert(1)&gt; &amp; more")
}

func TestRenderListEmpty(t *testing.T) {
	html, err := review.RenderList(nil)
	require.NoError(t, err)
	assert.Contains(t, html, "No reviews yet. Be the first!")
}
