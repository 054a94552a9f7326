package commands_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerworks/simpnl/internal/commands"
	"github.com/ledgerworks/simpnl/internal/config"
)

const ledger = "../../testdata/transactions.csv"

func runSimpnl(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func readCSV(t *testing.T, s string) [][]string {
	t.Helper()
	recs, err := csv.NewReader(strings.NewReader(s)).ReadAll()
	require.NoError(t, err)
	return recs
}

func TestVersion(t *testing.T) {
	out, _, err := runSimpnl(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev (commit: none")
}

func TestAnalyze_CSV(t *testing.T) {
	out, stderr, err := runSimpnl(t, "", "analyze", ledger, "--format", "csv", "--sort", "business")
	require.NoError(t, err)

	recs := readCSV(t, out)
	require.Len(t, recs, 4)
	assert.Equal(t, "business", recs[0][0])
	assert.Equal(t, "Ghost Shop", recs[1][0])
	assert.Equal(t, "HQ Ray", recs[2][0])
	assert.Equal(t, "4030.00", recs[2][11])
	assert.Equal(t, "80.60", recs[2][12])
	assert.Equal(t, "Tech & Gift", recs[3][0])
	assert.Equal(t, "2220.00", recs[3][11])

	assert.Contains(t, stderr, "without a business")
}

func TestAnalyze_DefaultSortIsProfit(t *testing.T) {
	out, _, err := runSimpnl(t, "", "analyze", ledger, "-f", "csv")
	require.NoError(t, err)

	recs := readCSV(t, out)
	require.Len(t, recs, 4)
	assert.Equal(t, "HQ Ray", recs[1][0])
	assert.Equal(t, "Ghost Shop", recs[3][0])
}

func TestAnalyze_JSON(t *testing.T) {
	out, _, err := runSimpnl(t, "", "analyze", ledger, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"run_id"`)
	assert.Contains(t, out, `"source": "transactions.csv"`)
	assert.Contains(t, out, `"unattributed": 1`)
}

func TestAnalyze_Table(t *testing.T) {
	out, _, err := runSimpnl(t, "", "analyze", ledger)
	require.NoError(t, err)
	assert.Contains(t, out, "$4,030.00")
	assert.Contains(t, out, "Tech & Gift")
}

func TestAnalyze_Weekly(t *testing.T) {
	out, _, err := runSimpnl(t, "", "analyze", ledger, "--format", "csv", "--granularity", "weekly")
	require.NoError(t, err)

	recs := readCSV(t, out)
	require.Len(t, recs, 4)
	assert.Equal(t, "period_label", recs[0][14])
	assert.Equal(t, "Week 1 (Day 1—4)", recs[1][14])
}

func TestAnalyze_DailyFailsOnDayWithoutRevenue(t *testing.T) {
	_, _, err := runSimpnl(t, "", "analyze", ledger, "-g", "auto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total revenue is zero")
}

func TestAnalyze_Stdin(t *testing.T) {
	data, err := os.ReadFile(ledger)
	require.NoError(t, err)

	out, _, err := runSimpnl(t, string(data), "analyze", "-", "-f", "csv")
	require.NoError(t, err)
	assert.Len(t, readCSV(t, out), 4)
}

func TestAnalyze_BadFlags(t *testing.T) {
	_, _, err := runSimpnl(t, "", "analyze", ledger, "--format", "xlsx")
	assert.ErrorContains(t, err, "unknown report format")

	_, _, err = runSimpnl(t, "", "analyze", ledger, "--sort", "size")
	assert.ErrorContains(t, err, "unknown sort order")

	_, _, err = runSimpnl(t, "", "analyze", ledger, "--input", "qif")
	assert.ErrorContains(t, err, "unknown input format")

	_, _, err = runSimpnl(t, "", "analyze", ledger, "--granularity", "hourly")
	assert.ErrorContains(t, err, "unknown granularity")
}

func TestAnalyze_MissingFile(t *testing.T) {
	_, _, err := runSimpnl(t, "", "analyze", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnalyze_NoValidData(t *testing.T) {
	_, _, err := runSimpnl(t, "just\nnoise\n", "analyze", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cleaning error")
}

func TestRecords_CleanCopyRoundTrips(t *testing.T) {
	out, _, err := runSimpnl(t, "", "records", ledger, "--format", "csv")
	require.NoError(t, err)

	clean := filepath.Join(t.TempDir(), "clean.csv")
	require.NoError(t, os.WriteFile(clean, []byte(out), 0o644))

	want, _, err := runSimpnl(t, "", "analyze", ledger, "-f", "csv", "--sort", "business")
	require.NoError(t, err)
	got, _, err := runSimpnl(t, "", "analyze", clean, "-f", "csv", "--sort", "business", "--input", "csv")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRecords_Category(t *testing.T) {
	out, _, err := runSimpnl(t, "", "records", ledger, "--category", "personal")
	require.NoError(t, err)
	assert.Contains(t, out, "Taxi Ride")
	assert.Contains(t, out, "Gold Health Insurance (Nobody Known)")
	assert.NotContains(t, out, "Rent")
}

func TestRecords_ShowsBusinesses(t *testing.T) {
	out, _, err := runSimpnl(t, "", "records", ledger)
	require.NoError(t, err)

	var line string
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "Silver Health Insurance") {
			line = l
		}
	}
	assert.Contains(t, line, "direct_cost")
	assert.Contains(t, line, "Tech & Gift")
}

func TestDirectory(t *testing.T) {
	out, _, err := runSimpnl(t, "", "directory", ledger)
	require.NoError(t, err)
	assert.Contains(t, out, "EMPLOYEE")
	assert.Contains(t, out, "Ann Lee")
	assert.Contains(t, out, "Joseph Halliday")
	assert.Contains(t, out, "Kathleen Hinds")
	assert.NotContains(t, out, "reassignments")
}

func TestDirectory_Conflicts(t *testing.T) {
	ledger := strings.Join([]string{
		`"Ann Lee (Shop A Daily Wage)",1,Wage,-10,0`,
		`"Ann Lee (Shop B Daily Wage)",2,Wage,-10,0`,
	}, "\n")
	out, stderr, err := runSimpnl(t, ledger, "directory", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "1 reassignments")
	assert.Contains(t, out, "day 2: Ann Lee moved from Shop A to Shop B")
	assert.Contains(t, stderr, "employee reassigned")
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")
	out, _, err := runSimpnl(t, "", "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, config.FileName)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, _, err = runSimpnl(t, "", "init", dir)
	assert.ErrorContains(t, err, "already exists")

	_, _, err = runSimpnl(t, "", "init", dir, "--force")
	assert.NoError(t, err)
}

func TestAnalyze_UsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Report.Format = "csv"
	cfg.Report.Sort = "business"
	cfg.Analysis.Granularity = "weekly"
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, config.Save(path, cfg))

	out, _, err := runSimpnl(t, "", "--config", path, "analyze", ledger)
	require.NoError(t, err)

	recs := readCSV(t, out)
	require.Len(t, recs, 4)
	assert.Equal(t, "Ghost Shop", recs[1][0])
	assert.Equal(t, "0", recs[1][13])
}

func TestAnalyze_ConfigPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Allocation.EqualSplitTypes = append(cfg.Allocation.EqualSplitTypes, "Taxi Ride")
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, config.Save(path, cfg))

	out, _, err := runSimpnl(t, "", "--config", path, "analyze", ledger, "-f", "csv", "--sort", "business")
	require.NoError(t, err)

	recs := readCSV(t, out)
	require.Len(t, recs, 4)
	assert.Equal(t, "216.25", recs[2][3], "HQ Ray's equal share now includes the taxi ride")
}
