package chart

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"norya.com/report/types"
)

func floatPtr(v float64) *float64 { return &v }

func TestSynthesizeDeterministic(t *testing.T) {
	ref := &types.ReferenceRange{Low: 12, High: 16}

	first, ok := Synthesize("Hemoglobin (Hb)", floatPtr(14.2), "g/dL", ref, types.StatusNormal)
	require.True(t, ok)
	second, ok := Synthesize("Hemoglobin (Hb)", floatPtr(14.2), "g/dL", ref, types.StatusNormal)
	require.True(t, ok)
	require.Equal(t, first, second)

	decoded, err := base64.StdEncoding.DecodeString(first.Encoded)
	require.NoError(t, err)
	require.Equal(t, first.SVG, string(decoded))
}

func TestSynthesizeAbsence(t *testing.T) {
	ref := &types.ReferenceRange{Low: 12, High: 16}

	_, ok := Synthesize("X", nil, "", ref, types.StatusNormal)
	require.False(t, ok, "no numeric value")

	_, ok = Synthesize("X", floatPtr(14.2), "", nil, types.StatusNormal)
	require.False(t, ok, "no reference range")

	_, ok = Synthesize("X", floatPtr(14.2), "", &types.ReferenceRange{Low: 16, High: 16}, types.StatusNormal)
	require.False(t, ok, "empty range")
}

func TestSynthesizeDisplayWindow(t *testing.T) {
	artifact, ok := Synthesize("TSH", floatPtr(2.1), "mIU/L", &types.ReferenceRange{Low: 0.27, High: 4.2}, types.StatusNormal)
	require.True(t, ok)

	// padding = max(span*0.3, span*0.1) with span = 3.93
	span := 4.2 - 0.27
	require.InDelta(t, 0.27-span*0.3, artifact.DisplayMin, 1e-9)
	require.InDelta(t, 4.2+span*0.3, artifact.DisplayMax, 1e-9)
}

func TestSynthesizeOutlierWidensWindow(t *testing.T) {
	// A value far outside the range must still land inside the window.
	artifact, ok := Synthesize("Ferritin", floatPtr(900), "ng/mL", &types.ReferenceRange{Low: 30, High: 400}, types.StatusHigh)
	require.True(t, ok)
	require.Less(t, artifact.DisplayMin, 30.0)
	require.Greater(t, artifact.DisplayMax, 900.0)
}

func TestSynthesizeZoneColors(t *testing.T) {
	ref := &types.ReferenceRange{Low: 12, High: 16}

	cases := []struct {
		status   types.Status
		expected string
	}{
		{types.StatusNormal, colorNormal},
		{types.StatusLow, colorRisk},
		{types.StatusHigh, colorRisk},
		{types.StatusBorder, colorBorder},
	}
	for _, c := range cases {
		artifact, ok := Synthesize("Hb", floatPtr(14), "g/dL", ref, c.status)
		require.True(t, ok)
		require.Contains(t, artifact.SVG, c.expected, "status %s", c.status)
	}
}

func TestSynthesizeEscapesLabel(t *testing.T) {
	artifact, ok := Synthesize(`A<B & "C"`, floatPtr(1.5), "", &types.ReferenceRange{Low: 1, High: 2}, types.StatusNormal)
	require.True(t, ok)
	require.NotContains(t, artifact.SVG, `A<B`)
	require.Contains(t, artifact.SVG, "A&lt;B &amp; &quot;C&quot;")
}

func TestSynthesizeMarkerClamped(t *testing.T) {
	// All marker x positions must stay within the clamp inset no matter how
	// far the value sits from the range.
	for _, v := range []float64{-1e6, 0, 250, 1e6} {
		artifact, ok := Synthesize("X", floatPtr(v), "", &types.ReferenceRange{Low: 100, High: 200}, types.StatusNormal)
		require.True(t, ok)
		for _, line := range strings.Split(artifact.SVG, "\n") {
			if !strings.Contains(line, "<line ") {
				continue
			}
			require.NotContains(t, line, `x1="-`)
		}
	}
}

func TestCache(t *testing.T) {
	cache := NewCache()
	ref := &types.ReferenceRange{Low: 12, High: 16}

	first, ok := cache.Synthesize("Hb", floatPtr(14.2), "g/dL", ref, types.StatusNormal)
	require.True(t, ok)
	second, ok := cache.Synthesize("Hb", floatPtr(14.2), "g/dL", ref, types.StatusNormal)
	require.True(t, ok)
	require.Equal(t, first, second)

	// A different name draws a different label, so it must miss the cache.
	other, ok := cache.Synthesize("Fe", floatPtr(14.2), "g/dL", ref, types.StatusNormal)
	require.True(t, ok)
	require.NotEqual(t, first.SVG, other.SVG)

	_, ok = cache.Synthesize("Hb", nil, "g/dL", ref, types.StatusNormal)
	require.False(t, ok)
}
