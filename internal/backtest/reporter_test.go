package backtest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	r := NewReport()
	r.TotalGames = 2
	r.Add(ScoreGame(testGame(6, 4, 8.5), testResult(0.60, []int{9, 10})))
	r.Add(ScoreGame(testGame(3, 4, 8.5), testResult(0.40, []int{6, 7})))
	final := r.Finalize()

	path := filepath.Join(t.TempDir(), "reports", "backtest.json")
	require.NoError(t, WriteReport(final, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded := &Report{}
	require.NoError(t, json.Unmarshal(data, loaded))
	assert.Equal(t, final.Scored, loaded.Scored)
	assert.Equal(t, final.PITHistogram, loaded.PITHistogram)
	assert.Len(t, loaded.Samples, 2)
}

func TestGenerateConsoleReport(t *testing.T) {
	r := NewReport()
	r.TotalGames = 1
	r.Add(ScoreGame(testGame(6, 4, 8.5), testResult(0.70, []int{10})))
	out := GenerateConsoleReport(r.Finalize())

	assert.Contains(t, out, "Backtest Report")
	assert.Contains(t, out, "Accuracy: 1.000")
	assert.Contains(t, out, "PIT histogram:")
	assert.Contains(t, out, "Confidence brackets:")
	assert.Contains(t, out, "0.65-0.75")
}
