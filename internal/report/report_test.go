package report

import (
	"bytes"
	"testing"

	"enrollment/internal/config"
	"enrollment/internal/models"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestTextWriterDefaultTemplate(t *testing.T) {
	var buf bytes.Buffer
	tw, err := NewTextWriter(&buf, config.Default().LineTemplate)
	require.NoError(t, err)

	require.NoError(t, tw.WriteLine(models.ProgramRow{Code: "CIS", Program: "Computer and Information Science", Count: 2}))
	require.NoError(t, tw.WriteLine(models.ProgramRow{Code: "GSS", Program: "General Social Science", Count: 1}))

	require.Equal(t, "2 Computer and Information Science\n1 General Social Science\n", buf.String())
}

func TestTextWriterAllTags(t *testing.T) {
	var buf bytes.Buffer
	tw, err := NewTextWriter(&buf, "${code}|${program}|${count}")
	require.NoError(t, err)

	require.NoError(t, tw.WriteLine(models.ProgramRow{Code: "MATH", Program: "Mathematics", Count: 12}))
	require.Equal(t, "MATH|Mathematics|12\n", buf.String())
}

func TestNewTextWriterRejectsUnknownTag(t *testing.T) {
	_, err := NewTextWriter(&bytes.Buffer{}, "${count} ${major}")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestWriteJSON(t *testing.T) {
	r := &models.Report{
		Summary: models.Summary{Students: 3, Programs: 2},
		Programs: []models.ProgramRow{
			{Code: "CIS", Program: "Computer and Information Science", Count: 2},
			{Code: "GSS", Program: "General Social Science", Count: 1},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, r))

	var got models.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, *r, got)
	require.Contains(t, buf.String(), `"program_name": "Computer and Information Science"`)
}
