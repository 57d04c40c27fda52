package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"hrfx-gateway/internal/domain"
	"hrfx-gateway/internal/upstream"
	"hrfx-gateway/pkg/dates"
)

// probationSoonDays is the inclusive horizon for the "ending soon" count.
const probationSoonDays = 30

// HRCacheKey keys the report on the database identifier, so two deployments
// pointed at different databases never cross-contaminate a shared cache.
func HRCacheKey(databaseID string) string {
	return "hr-data-" + databaseID
}

// NotionSource is the HR record upstream.
type NotionSource interface {
	QueryDatabase(ctx context.Context) ([]upstream.NotionPage, error)
}

type HRService struct {
	Token      string
	DatabaseID string
	Source     NotionSource
	Window     time.Duration
	Alerts     Alerter
	Log        logrus.FieldLogger
}

// BuildReport fetches the full employee set and shapes it for the dashboard.
// Unlike the FX pipeline there is no fallback here: fabricating employee data
// is worse than an error response.
func (s *HRService) BuildReport(ctx context.Context, now time.Time) (*domain.HRReport, error) {
	if s.Token == "" {
		return nil, domain.ErrConfigMissing{Key: "NOTION_TOKEN"}
	}
	if s.DatabaseID == "" {
		return nil, domain.ErrConfigMissing{Key: "NOTION_DB_ID"}
	}

	pages, err := s.Source.QueryDatabase(ctx)
	if err != nil {
		if s.Log != nil {
			s.Log.WithError(err).Error("HR upstream query failed")
		}
		if s.Alerts != nil {
			s.Alerts.Notify(fmt.Sprintf("HR pipeline failed: %v", err))
		}
		return nil, err
	}

	employees := make([]domain.Employee, 0, len(pages))
	for _, page := range pages {
		employees = append(employees, mapEmployee(page, now))
	}

	summary := summarize(employees, now)
	breakdowns := domain.HRBreakdowns{
		ByDepartment:  countBy(employees, func(e domain.Employee) string { return e.Department }),
		ByDesignation: countBy(employees, func(e domain.Employee) string { return e.Designation }),
		ByGender:      countBy(employees, func(e domain.Employee) string { return e.Gender }),
		ByEducation:   countBy(employees, func(e domain.Employee) string { return e.Education }),
	}

	return &domain.HRReport{
		LastRefreshed:          now.UTC().Format(time.RFC3339),
		CacheDuration:          describeWindow(s.Window),
		Summary:                summary,
		Breakdowns:             breakdowns,
		AvgSalaryByDepartment:  groupAverage(employees, func(e domain.Employee) string { return e.Department }),
		AvgSalaryByDesignation: groupAverage(employees, func(e domain.Employee) string { return e.Designation }),
		Employees:              employees,
	}, nil
}

// mapEmployee normalizes one raw record. Every absent property gets an
// explicit default here so nothing loosely typed leaks deeper into the
// pipeline.
func mapEmployee(page upstream.NotionPage, now time.Time) domain.Employee {
	probationEnd := page.Date("Probation End Date")
	statusRaw := page.Formula("Status")

	return domain.Employee{
		ID:                page.Text("Employee ID"),
		EmployeeID:        page.Text("Employee ID"),
		Name:              page.Text("Name of employee"),
		Designation:       orUnknown(page.Select("Designation")),
		Department:        orUnknown(page.Select("Department")),
		Country:           orUnknown(page.Select("Country")),
		Gender:            orUnknown(page.Select("Gender")),
		Education:         orUnknown(page.Select("Education/Qualification")),
		JoiningDate:       page.Date("Joining Date"),
		ProbationEnd:      probationEnd,
		DOB:               page.Date("DOB"),
		ExitReason:        page.Select("Exit Reason"),
		SalaryCurrency:    orDefault(strings.ToUpper(page.Select("Salary FX")), "NPR"),
		BaseSalary:        page.Number("Revised Salary (NPR)"),
		StatusRaw:         statusRaw,
		Status:            ResolveStatus(statusRaw, probationEnd, now),
		ReportingManager:  page.Text("Reporting Manager"),
		Email:             page.Text("Email"),
		Phone:             page.Text("Phone"),
		Citizenship:       page.Text("Citizenship"),
		BankAccount:       page.Text("Bank Account"),
		PAN:               page.Text("PAN"),
		Remarks:           page.Text("Remarks"),
		YearsOfExperience: page.Text("Years of Experience"),
		LastWorkingDate:   page.Date("Last Working Date"),
	}
}

func summarize(employees []domain.Employee, now time.Time) domain.HRSummary {
	summary := domain.HRSummary{TotalEmployees: len(employees)}
	for _, e := range employees {
		switch e.Status {
		case domain.StatusActive:
			summary.ActiveEmployees++
		case domain.StatusInactive:
			summary.InactiveEmployees++
		}
		if probationEndingSoon(e, now) {
			summary.ProbationNext30Days++
		}
	}
	return summary
}

// probationEndingSoon: status Probation with an end date 0..30 whole days
// away. A past end date is excluded even when stale data still reads
// Probation.
func probationEndingSoon(e domain.Employee, now time.Time) bool {
	if e.Status != domain.StatusProbation || e.ProbationEnd == nil {
		return false
	}
	end, err := dates.ParseDay(*e.ProbationEnd)
	if err != nil {
		return false
	}
	days := dates.DaysBetween(now, end)
	return days >= 0 && days <= probationSoonDays
}

func countBy(employees []domain.Employee, key func(domain.Employee) string) map[string]int {
	result := make(map[string]int)
	for _, e := range employees {
		result[orUnknown(key(e))]++
	}
	return result
}

func groupAverage(employees []domain.Employee, key func(domain.Employee) string) map[string]int {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, e := range employees {
		k := orUnknown(key(e))
		sums[k] += e.BaseSalary
		counts[k]++
	}

	result := make(map[string]int, len(counts))
	for k, count := range counts {
		if count == 0 {
			result[k] = 0
			continue
		}
		result[k] = int(math.Round(sums[k] / float64(count)))
	}
	return result
}

func describeWindow(window time.Duration) string {
	if window >= time.Hour && window%time.Hour == 0 {
		return fmt.Sprintf("%d hours", int(window.Hours()))
	}
	return fmt.Sprintf("%d minutes", int(window.Minutes()))
}

func orUnknown(s string) string {
	return orDefault(s, "Unknown")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
