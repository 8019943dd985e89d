package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductEffectivePrice(t *testing.T) {
	p := Product{Price: 100}
	assert.Equal(t, 100.0, p.EffectivePrice())

	discounted := 80.0
	p.DiscountPrice = &discounted
	assert.Equal(t, 80.0, p.EffectivePrice())
}

func TestProductImageList(t *testing.T) {
	p := Product{Images: `["a.jpg","b.jpg"]`}
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.ImageList())
	assert.Equal(t, "a.jpg", p.FirstImage())

	assert.Nil(t, Product{}.ImageList())
	assert.Empty(t, Product{}.FirstImage())
	assert.Nil(t, Product{Images: "not json"}.ImageList())
}
