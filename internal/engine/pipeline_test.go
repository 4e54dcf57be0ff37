package engine

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"enrollment/internal/config"

	"github.com/stretchr/testify/require"
)

const fullPrograms = `Code,Program Name
BADM,Business Administration
BIC,Bachelor of Interdisciplinary Studies
CIS,Computer and Information Science
DSCI,Data Science
GSS,General Social Science
`

func testConfig(roster, programs string) config.Config {
	cfg := config.Default()
	cfg.RosterPath = roster
	cfg.ProgramsPath = programs
	return cfg
}

func TestPipelineRun(t *testing.T) {
	programs := writeCSV(t, fullPrograms)
	var out bytes.Buffer

	err := NewPipeline(testConfig("testdata/test_roster.csv", programs), nil).Run(&out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Equal(t, []string{
		"2 Computer and Information Science",
		"1 General Social Science",
		"1 Data Science",
		"1 Bachelor of Interdisciplinary Studies",
		"1 Business Administration",
	}, lines)
}

func TestPipelineRunTemplate(t *testing.T) {
	cfg := testConfig("testdata/test_roster.csv", writeCSV(t, fullPrograms))
	cfg.LineTemplate = "${code}\t${count}"
	var out bytes.Buffer

	require.NoError(t, NewPipeline(cfg, nil).Run(&out))
	require.True(t, strings.HasPrefix(out.String(), "CIS\t2\n"), out.String())
}

func TestPipelineHeaderOnlyRoster(t *testing.T) {
	roster := writeCSV(t, "Student ID,Major\n")
	var out bytes.Buffer

	require.NoError(t, NewPipeline(testConfig(roster, writeCSV(t, fullPrograms)), nil).Run(&out))
	require.Empty(t, out.String())
}

func TestPipelineMissingMajorColumn(t *testing.T) {
	roster := writeCSV(t, "Student ID,Program\n1,CIS\n")
	var out bytes.Buffer

	err := NewPipeline(testConfig(roster, writeCSV(t, fullPrograms)), nil).Run(&out)
	require.ErrorIs(t, err, ErrMissingColumn)
	require.Empty(t, out.String())
}

func TestPipelineMissingKeyKeepsEarlierLines(t *testing.T) {
	roster := writeCSV(t, "Major\nCIS\nCIS\nZZZ\n")
	programs := writeCSV(t, "Code,Program Name\nCIS,Computer and Information Science\n")
	var out bytes.Buffer

	err := NewPipeline(testConfig(roster, programs), nil).Run(&out)
	require.ErrorIs(t, err, ErrMissingKey)
	require.Equal(t, "2 Computer and Information Science\n", out.String())
}

func TestPipelineMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "programs.csv")
	var out bytes.Buffer

	err := NewPipeline(testConfig("testdata/test_roster.csv", missing), nil).Run(&out)
	require.ErrorIs(t, err, ErrFileNotFound)
	require.Empty(t, out.String())
}

func TestPipelineReport(t *testing.T) {
	r, err := NewPipeline(testConfig("testdata/test_roster.csv", writeCSV(t, fullPrograms)), nil).Report()
	require.NoError(t, err)

	require.Equal(t, 6, r.Summary.Students)
	require.Equal(t, 5, r.Summary.Programs)
	require.Equal(t, "CIS", r.Programs[0].Code)
	require.Equal(t, 2, r.Programs[0].Count)
	require.Equal(t, "Computer and Information Science", r.Programs[0].Program)
}

func TestPipelineReportMissingKey(t *testing.T) {
	r, err := NewPipeline(testConfig("testdata/test_roster.csv", "testdata/test_programs.csv"), nil).Report()
	require.ErrorIs(t, err, ErrMissingKey)
	require.Nil(t, r)

	var tableErr *TableError
	require.ErrorAs(t, err, &tableErr)
	require.Equal(t, "CIS", tableErr.Field)
}
