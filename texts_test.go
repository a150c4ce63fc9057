package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCategory(t *testing.T) {
	assert.True(t, validCategory("quotes"))
	assert.True(t, validCategory("programming"))
	assert.True(t, validCategory("random"))
	assert.True(t, validCategory("custom"))

	assert.False(t, validCategory("poetry"))
	assert.False(t, validCategory(""))
}

func TestRandomText(t *testing.T) {
	assert.Contains(t, textSamples["programming"], randomText("programming"))

	// Unknown categories fall back to quotes.
	assert.Contains(t, textSamples["quotes"], randomText("poetry"))
	assert.Contains(t, textSamples["quotes"], randomText(""))
}
