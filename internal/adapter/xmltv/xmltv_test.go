package xmltv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCountsAndFreshness(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<tv date="20260101" generator-info-name="WebGrab+Plus">
  <channel id="bbc1"><display-name>BBC One</display-name></channel>
  <channel id="bbc2"><display-name>BBC Two</display-name></channel>
  <programme channel="bbc1" start="20260101060000 +0000"><title>Breakfast</title></programme>
  <programme channel="bbc1" start="20260103120000 +0000"><title>News</title></programme>
  <programme channel="bbc2" start="20251230000000"><title>Film</title></programme>
</tv>`

	info, err := Analyze([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, 2, info.Channels)
	assert.Equal(t, 3, info.Programmes)
	assert.Equal(t, "20260101", info.GeneratedDate)
	assert.Equal(t, "WebGrab+Plus", info.Generator)
	assert.Equal(t, time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC), info.LatestStart)
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	info, err := Analyze([]byte(`<tv></tv>`))
	require.NoError(t, err)

	assert.Zero(t, info.Channels)
	assert.Zero(t, info.Programmes)
	assert.Empty(t, info.GeneratedDate)
	assert.Empty(t, info.Generator)
	assert.True(t, info.LatestStart.IsZero())
}

func TestAnalyzeSkipsUnparsableStarts(t *testing.T) {
	doc := `<tv>
  <programme start="not-a-date"><title>a</title></programme>
  <programme start="2026"><title>b</title></programme>
  <programme><title>c</title></programme>
  <programme start="20260102030405 +0100"><title>d</title></programme>
</tv>`

	info, err := Analyze([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, 4, info.Programmes)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), info.LatestStart)
}

func TestAnalyzeNoParsableStart(t *testing.T) {
	info, err := Analyze([]byte(`<tv><programme start="soon"/></tv>`))
	require.NoError(t, err)

	assert.Equal(t, 1, info.Programmes)
	assert.True(t, info.LatestStart.IsZero())
}

func TestAnalyzeMalformedDocument(t *testing.T) {
	_, err := Analyze([]byte(`<tv><programme`))
	require.Error(t, err)
}
