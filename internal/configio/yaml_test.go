package configio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-ops/shiftplan-go/internal/calendar"
	"github.com/kestrel-ops/shiftplan-go/internal/domain"
)

const sampleYAML = `
global:
  year: 2025
  month: 1
  day_start_hour: 6
  night_start_hour: 21
  shift_length_hours: 12
  shift_start_hour: 6
  he_pct: 50
  rf_pct: 75
  rn_pct: 25
  hours_base_month: 240
  hours_per_week: 40
  sunday_threshold: 2
  min_fixed_per_post: 2
  max_posts_per_floater: 2
  w_he: 3
  w_rf: 2
  w_rn: 1
  w_base: 1
  use_lexicographic: true
  sunday_policy: smart

holidays:
  - date: "2025-01-01"
    description: "New Year"

posts:
  - post_id: P1
    name: Gate
    required_coverage: 1
    allow_day_shift: true
    allow_night_shift: true

employees:
  - emp_id: E1
    kind: FIXED
    assigned_post_id: P1
    contract_salary: 1500
    available_from: "2025-01-01"
    available_to: "2025-01-31"
  - emp_id: F1
    kind: FLOATER
    contract_salary: 1300
    available_from: "2025-01-01"
    available_to: "2025-01-31"
    max_posts_if_floater: 3
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shiftplan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	return path
}

func TestLoadYAML_ParsesGlobal(t *testing.T) {
	cfg, err := LoadYAML(writeSample(t))
	require.NoError(t, err)

	require.Equal(t, 2025, cfg.Global.Year)
	require.Equal(t, time.January, cfg.Global.Month)
	require.Equal(t, 6*time.Hour, cfg.Global.DayStart)
	require.Equal(t, 21*time.Hour, cfg.Global.NightStart)
	require.Equal(t, 12, cfg.Global.ShiftLengthHours)
	require.Equal(t, 50.0, cfg.Global.HEPercent)
	require.Equal(t, 75.0, cfg.Global.RFPercent)
	require.Equal(t, 25.0, cfg.Global.RNPercent)
	require.Equal(t, 2, cfg.Global.SundayThreshold)
	require.True(t, cfg.Global.UseLexicographic)
}

func TestLoadYAML_ParsesHolidaysPostsEmployees(t *testing.T) {
	cfg, err := LoadYAML(writeSample(t))
	require.NoError(t, err)

	require.Len(t, cfg.Holidays, 1)
	require.Equal(t, calendar.Date{Year: 2025, Month: time.January, Day: 1}, cfg.Holidays[0].Date)

	require.Len(t, cfg.Posts, 1)
	require.Equal(t, "P1", cfg.Posts[0].PostID)
	require.Equal(t, 1, cfg.Posts[0].RequiredCoverage)

	require.Len(t, cfg.Employees, 2)
	require.Equal(t, domain.Fixed, cfg.Employees[0].Kind)
	require.Equal(t, domain.Floater, cfg.Employees[1].Kind)
	require.Equal(t, 3, cfg.Employees[1].MaxPostsIfFloater)
	require.Equal(t, calendar.Date{Year: 2025, Month: time.January, Day: 31}, cfg.Employees[0].AvailableTo)
}

func TestLoadYAML_MissingFile(t *testing.T) {
	_, err := LoadYAML(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
}

func TestLoadYAML_BadDateIsError(t *testing.T) {
	bad := `
posts:
  - post_id: P1
employees:
  - emp_id: E1
    kind: FIXED
    available_from: "not-a-date"
    available_to: "2025-01-31"
`
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	_, err := LoadYAML(path)
	require.Error(t, err)
}
