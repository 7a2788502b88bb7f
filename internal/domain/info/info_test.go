package info

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	_, err := NewPage(PageAboutUs, strings.Repeat("a", MaxAboutUsLength+1))
	assert.Error(t, err)

	p, err := NewPage(PagePrivacyPolicy, strings.Repeat("a", MaxAboutUsLength+1))
	require.NoError(t, err)
	assert.True(t, p.IsActive)

	_, err = NewPage(PageKind("terms"), "text")
	assert.Error(t, err)
}

func TestFAQGroup_AddFAQ(t *testing.T) {
	g, err := NewFAQGroup("Shipping", 10)
	require.NoError(t, err)

	faq, err := g.AddFAQ("How long does delivery take?", "Three days.", 1)
	require.NoError(t, err)
	assert.Equal(t, g.ID, faq.GroupID)

	_, err = g.AddFAQ("Long answer?", strings.Repeat("a", MaxAnswerLength+1), 1)
	assert.Error(t, err)
	assert.Len(t, g.FAQs, 1)
}

func TestNewContactRequest(t *testing.T) {
	req, err := NewContactRequest("Sam", "sam@example.com", "Refund", "Where is my refund?", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Refund", req.Subject)

	_, err = NewContactRequest("Sam", "not an email", "Refund", "msg", nil, nil)
	assert.Error(t, err)

	_, err = NewContactRequest("Sam", "sam@example.com", "Refund", strings.Repeat("m", MaxContactMessage+1), nil, nil)
	assert.Error(t, err)
}

func TestNewShopLocation(t *testing.T) {
	_, err := NewShopLocation("Main St 1", 95, 0)
	assert.Error(t, err)

	loc, err := NewShopLocation("Main St 1", 35.7, 51.4)
	require.NoError(t, err)
	assert.Equal(t, "Main St 1", loc.Address)
}
