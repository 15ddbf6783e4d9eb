package mapping

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultMapper_PassesNamesThrough(t *testing.T) {
	m := NewDefaultMapper("generic", 32, 32000, 4096)

	mapped, ok := m.Map("model.layers.0.self_attn.q_proj.weight")
	require.True(t, ok)
	require.Equal(t, "model.layers.0.self_attn.q_proj.weight", mapped.CanonicalName)
	require.Equal(t, HintDefault, mapped.QuantizationHint)
	require.False(t, mapped.HasLayerIndex)

	require.Equal(t, "generic", m.Name())
	require.Equal(t, 32, m.NumLayers())
	require.Equal(t, 32000, m.VocabSize())
	require.Equal(t, 4096, m.HiddenSize())
}
