package console

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_Load(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"name", "date", "ET0"},
		{"Maribor", "2023-12-31", "0.5"},
	}, dataframe.DetectTypes(false))

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf).Load(context.Background(), df))

	out := buf.String()
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "ET0")
	assert.Contains(t, out, "Maribor")
	assert.Contains(t, out, "2023-12-31")
}
