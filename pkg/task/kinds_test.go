package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindByName(t *testing.T) {
	kind, err := KindByName("remove-background")
	require.NoError(t, err)
	assert.Equal(t, BackgroundRemoval.QueryEndpoint, kind.QueryEndpoint)

	_, err = KindByName("upscale")
	assert.Equal(t, ErrUnknownKind, err)
}

func TestKindResultFields(t *testing.T) {
	assert.Equal(t, []string{"FinalImageUrl", "InPaintingUrl", "SourceUrl", "TemplateJson"}, Translation.ResultFields())
	assert.Equal(t, []string{"OutputUrl"}, BackgroundRemoval.ResultFields())
}

func TestStateIsTerminal(t *testing.T) {
	for _, state := range []State{Succeeded, Failed, TimedOut} {
		assert.True(t, state.IsTerminal(), state.String())
	}

	for _, state := range []State{Submitted, Polling} {
		assert.False(t, state.IsTerminal(), state.String())
	}
}
