// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSotaQuery(t *testing.T) {
	q := BuildSotaQuery("retrieval augmented generation")
	assert.Contains(t, q, "retrieval augmented generation")
	assert.Contains(t, q, "state-of-the-art")
	assert.Contains(t, q, "SUPERSEDED")
	assert.Equal(t, q, BuildSotaQuery("retrieval augmented generation"), "same input, same output")
}

func TestBuildRecentQuery(t *testing.T) {
	q := BuildRecentQuery("agents", 7)
	assert.Contains(t, q, "agents")
	assert.Contains(t, q, "last 7 days")
	assert.NotContains(t, q, "30")

	assert.Contains(t, BuildRecentQuery("agents", 0), "last 30 days")
	assert.Equal(t, BuildRecentQuery("agents", 0), BuildRecentQuery("agents", DefaultRecentDays))
}

func TestMustRenderPanicsOnTemplateError(t *testing.T) {
	broken := template.Must(template.New("broken").Parse("{{.Missing}}"))
	assert.Panics(t, func() {
		mustRender(broken, promptData{Topic: "x"})
	})
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name string
		mode QueryMode
		want string
	}{
		{"empty mode is plain", "", "topic"},
		{"plain", ModePlain, "topic"},
		{"sota", ModeSOTA, BuildSotaQuery("topic")},
		{"recent", ModeRecent, BuildRecentQuery("topic", 14)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildQuery("topic", tt.mode, 14)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := BuildQuery("topic", "weekly", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
