package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawBreakdownBars(t *testing.T) {
	items := []SummaryItem{
		{Label: "Theft", Value: 12},
		{Label: "Assault", Value: 7},
		{Label: "Burglary", Value: 3},
	}

	png, err := DrawBreakdownBars("Crimes by type", items)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG signature
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestDrawBreakdownBarsEmpty(t *testing.T) {
	_, err := DrawBreakdownBars("empty", nil)
	assert.Error(t, err)
}
