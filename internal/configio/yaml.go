// Package configio loads a planning run's Config from a YAML file for
// the demo CLI (cmd/shiftplan) and for tests — not a business-rule
// validator, just a schema-shaped reader in the teacher's yaml.v3 style
// (internal/openapi/routes.go unmarshals its spec the same way).
package configio

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kestrel-ops/shiftplan-go/internal/calendar"
	"github.com/kestrel-ops/shiftplan-go/internal/domain"
)

type yamlConfig struct {
	Global struct {
		Year             int     `yaml:"year"`
		Month            int     `yaml:"month"`
		DayStartHour     float64 `yaml:"day_start_hour"`
		NightStartHour   float64 `yaml:"night_start_hour"`
		ShiftLengthHours int     `yaml:"shift_length_hours"`
		ShiftStartHour   float64 `yaml:"shift_start_hour"`

		HEPercent float64 `yaml:"he_pct"`
		RFPercent float64 `yaml:"rf_pct"`
		RNPercent float64 `yaml:"rn_pct"`

		HoursBaseMonth float64 `yaml:"hours_base_month"`
		HoursPerWeek   float64 `yaml:"hours_per_week"`

		SundayThreshold    int `yaml:"sunday_threshold"`
		MinFixedPerPost    int `yaml:"min_fixed_per_post"`
		MaxPostsPerFloater int `yaml:"max_posts_per_floater"`

		WeightHE   float64 `yaml:"w_he"`
		WeightRF   float64 `yaml:"w_rf"`
		WeightRN   float64 `yaml:"w_rn"`
		WeightBase float64 `yaml:"w_base"`

		UseLexicographic bool   `yaml:"use_lexicographic"`
		SundayPolicy     string `yaml:"sunday_policy"`
	} `yaml:"global"`

	Holidays []struct {
		Date        string `yaml:"date"` // YYYY-MM-DD
		Description string `yaml:"description"`
	} `yaml:"holidays"`

	Posts []struct {
		PostID           string `yaml:"post_id"`
		Name             string `yaml:"name"`
		RequiredCoverage int    `yaml:"required_coverage"`
		AllowDayShift    bool   `yaml:"allow_day_shift"`
		AllowNightShift  bool   `yaml:"allow_night_shift"`
	} `yaml:"posts"`

	Employees []struct {
		EmpID             string  `yaml:"emp_id"`
		Kind              string  `yaml:"kind"` // FIXED or FLOATER
		AssignedPostID    string  `yaml:"assigned_post_id"`
		ContractSalary    float64 `yaml:"contract_salary"`
		AvailableFrom     string  `yaml:"available_from"`
		AvailableTo       string  `yaml:"available_to"`
		MaxPostsIfFloater int     `yaml:"max_posts_if_floater"`
	} `yaml:"employees"`
}

// LoadYAML reads and parses path into a domain.Config. It performs no
// business-rule validation (insufficient staffing, bad availability
// ranges, etc.) — that is Build's job at model-build time.
func LoadYAML(path string) (domain.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, fmt.Errorf("configio: reading %s: %w", path, err)
	}

	var y yamlConfig
	if err := yaml.Unmarshal(raw, &y); err != nil {
		return domain.Config{}, fmt.Errorf("configio: parsing %s: %w", path, err)
	}

	cfg := domain.Config{
		Global: domain.GlobalConfig{
			Year:               y.Global.Year,
			Month:              time.Month(y.Global.Month),
			DayStart:           durationFromHours(y.Global.DayStartHour),
			NightStart:         durationFromHours(y.Global.NightStartHour),
			ShiftLengthHours:   y.Global.ShiftLengthHours,
			ShiftStartTime:     durationFromHours(y.Global.ShiftStartHour),
			HEPercent:          y.Global.HEPercent,
			RFPercent:          y.Global.RFPercent,
			RNPercent:          y.Global.RNPercent,
			HoursBaseMonth:     y.Global.HoursBaseMonth,
			HoursPerWeek:       y.Global.HoursPerWeek,
			SundayThreshold:    y.Global.SundayThreshold,
			MinFixedPerPost:    y.Global.MinFixedPerPost,
			MaxPostsPerFloater: y.Global.MaxPostsPerFloater,
			WeightHE:           y.Global.WeightHE,
			WeightRF:           y.Global.WeightRF,
			WeightRN:           y.Global.WeightRN,
			WeightBase:         y.Global.WeightBase,
			UseLexicographic:   y.Global.UseLexicographic,
			SundayPolicy:       y.Global.SundayPolicy,
		},
	}

	for _, h := range y.Holidays {
		d, err := parseDate(h.Date)
		if err != nil {
			return domain.Config{}, fmt.Errorf("configio: holiday %q: %w", h.Date, err)
		}
		cfg.Holidays = append(cfg.Holidays, domain.Holiday{Date: d, Description: h.Description})
	}

	for _, p := range y.Posts {
		cfg.Posts = append(cfg.Posts, domain.Post{
			PostID:           p.PostID,
			Name:             p.Name,
			RequiredCoverage: p.RequiredCoverage,
			AllowDayShift:    p.AllowDayShift,
			AllowNightShift:  p.AllowNightShift,
		})
	}

	for _, e := range y.Employees {
		from, err := parseDate(e.AvailableFrom)
		if err != nil {
			return domain.Config{}, fmt.Errorf("configio: employee %s available_from: %w", e.EmpID, err)
		}
		to, err := parseDate(e.AvailableTo)
		if err != nil {
			return domain.Config{}, fmt.Errorf("configio: employee %s available_to: %w", e.EmpID, err)
		}

		cfg.Employees = append(cfg.Employees, domain.Employee{
			EmpID:             e.EmpID,
			Kind:              domain.EmployeeKind(e.Kind),
			AssignedPostID:    e.AssignedPostID,
			ContractSalary:    e.ContractSalary,
			AvailableFrom:     from,
			AvailableTo:       to,
			MaxPostsIfFloater: e.MaxPostsIfFloater,
		})
	}

	return cfg, nil
}

func durationFromHours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func parseDate(s string) (calendar.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return calendar.Date{}, err
	}
	return calendar.DateOf(t), nil
}
