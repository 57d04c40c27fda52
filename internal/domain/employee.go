package domain

// Status is the canonical employee lifecycle state.
type Status string

const (
	StatusActive    Status = "Active"
	StatusInactive  Status = "Inactive"
	StatusProbation Status = "Probation"
)

type Employee struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	Name              string  `json:"name"`
	Designation       string  `json:"designation"`
	Department        string  `json:"department"`
	Country           string  `json:"country"`
	Gender            string  `json:"gender"`
	Education         string  `json:"education"`
	JoiningDate       *string `json:"joining_date"`
	ProbationEnd      *string `json:"probation_end"`
	DOB               *string `json:"dob"`
	ExitReason        string  `json:"exit_reason"`
	SalaryCurrency    string  `json:"salary_currency"`
	BaseSalary        float64 `json:"base_salary"`
	StatusRaw         string  `json:"status_raw"`
	Status            Status  `json:"status"`
	ReportingManager  string  `json:"reporting_manager"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	Citizenship       string  `json:"citizenship"`
	BankAccount       string  `json:"bank_account"`
	PAN               string  `json:"pan"`
	Remarks           string  `json:"remarks"`
	YearsOfExperience string  `json:"years_of_experience"`
	LastWorkingDate   *string `json:"last_working_date"`
}

type HRSummary struct {
	TotalEmployees      int `json:"total_employees"`
	ActiveEmployees     int `json:"active_employees"`
	InactiveEmployees   int `json:"inactive_employees"`
	ProbationNext30Days int `json:"probation_next_30_days"`
}

type HRBreakdowns struct {
	ByDepartment  map[string]int `json:"by_department"`
	ByDesignation map[string]int `json:"by_designation"`
	ByGender      map[string]int `json:"by_gender"`
	ByEducation   map[string]int `json:"by_education"`
}

// HRReport is the pre-shaped dashboard payload for the HR endpoint.
type HRReport struct {
	LastRefreshed          string         `json:"last_refreshed"`
	CacheDuration          string         `json:"cache_duration"`
	Summary                HRSummary      `json:"summary"`
	Breakdowns             HRBreakdowns   `json:"breakdowns"`
	AvgSalaryByDepartment  map[string]int `json:"avg_salary_by_department"`
	AvgSalaryByDesignation map[string]int `json:"avg_salary_by_designation"`
	Employees              []Employee     `json:"employees"`
}
