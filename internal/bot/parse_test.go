package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/findyourad/internal/domain"
)

func TestParseAddRequest(t *testing.T) {
	in, err := parseAddRequest(`/add_request 'Banner ad' 5000 'tech,finance' 49.99`)
	require.NoError(t, err)

	assert.Equal(t, "Banner ad", in.Description)
	assert.Equal(t, 5000, in.Audience)
	assert.Equal(t, "tech,finance", in.Tags)
	assert.Equal(t, 49.99, in.Price)
}

func TestParseAddRequestErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"too few args", "/add_request 'Banner ad' 5000"},
		{"non-numeric audience", "/add_request 'Banner ad' many 'tech' 49.99"},
		{"non-numeric price", "/add_request 'Banner ad' 5000 'tech' cheap"},
		{"unbalanced quotes", "/add_request 'Banner ad 5000 tech 49.99"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseAddRequest(tc.text)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestParseAddChannel(t *testing.T) {
	in, err := parseAddChannel(`/add_channel @technews 'Tech News' 15 'tech,news'`)
	require.NoError(t, err)

	assert.Equal(t, "@technews", in.Link)
	assert.Equal(t, "Tech News", in.Name)
	assert.Equal(t, 15.0, in.PricePerPost)
	assert.Equal(t, "tech,news", in.Tags)
}

func TestParseAddChannelErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"too few args", "/add_channel @technews 'Tech News'"},
		{"non-numeric price", "/add_channel @technews 'Tech News' free 'tech'"},
		{"unbalanced quotes", "/add_channel @technews 'Tech News 15 tech"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseAddChannel(tc.text)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, parsePage(nil))
	assert.Equal(t, 1, parsePage([]string{"abc"}))
	assert.Equal(t, 4, parsePage([]string{"4"}))
	assert.Equal(t, -2, parsePage([]string{"-2"}))
}
