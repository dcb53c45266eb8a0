package hr

import (
	"strconv"

	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/resource"
	"github.com/simp-lee/hrdesk/internal/table"
)

func performanceDef() *resource.Definition[domain.Performance] {
	return &resource.Definition[domain.Performance]{
		Name:   "performance review",
		Path:   "performance",
		Title:  "Performance",
		Equal:  []string{"employeeId", "reviewerId", "period", "status", "rating"},
		Search: []string{"goals", "comments"},
		Actions: map[string]resource.Action[domain.Performance]{
			"submit":   (*domain.Performance).Submit,
			"complete": (*domain.Performance).Complete,
		},
	}
}

var performanceColumns = []table.Column[domain.Performance]{
	{Key: "employeeId", Header: "Employee", Sortable: true, Filterable: true},
	{Key: "period", Header: "Period", Sortable: true, Filterable: true},
	{Key: "rating", Header: "Rating", Sortable: true,
		Render: func(p domain.Performance) string {
			if p.Rating == 0 {
				return ""
			}
			return strconv.Itoa(p.Rating) + "/5"
		}},
	{Key: "reviewerId", Header: "Reviewer",
		Render: func(p domain.Performance) string { return ref(p.ReviewerID) }},
	{Key: "status", Header: "Status", Sortable: true, Filterable: true,
		Options: []string{domain.ReviewDraft, domain.ReviewSubmitted, domain.ReviewCompleted}},
	{Key: "reviewDate", Header: "Review date", Sortable: true},
}

func performanceSeed() []domain.Performance {
	return []domain.Performance{
		{EmployeeID: 2, ReviewerID: idPtr(1), Period: "2025-H2", Rating: 5, Goals: "Lead the storage migration", Comments: "Delivered ahead of plan", Status: domain.ReviewCompleted, ReviewDate: "2026-01-20", SubmittedOn: "2026-01-15"},
		{EmployeeID: 4, ReviewerID: idPtr(2), Period: "2026-H1", Rating: 4, Goals: "Own the CI pipeline", Status: domain.ReviewSubmitted, ReviewDate: "2026-07-10", SubmittedOn: "2026-07-08"},
		{EmployeeID: 7, ReviewerID: idPtr(3), Period: "2026-H1", Goals: "Close books within five days", Status: domain.ReviewDraft},
	}
}

func skillDef() *resource.Definition[domain.Skill] {
	return &resource.Definition[domain.Skill]{
		Name:   "skill",
		Path:   "skills",
		Title:  "Skills",
		Equal:  []string{"employeeId", "category", "level", "certified"},
		Search: []string{"name"},
	}
}

var skillColumns = []table.Column[domain.Skill]{
	{Key: "employeeId", Header: "Employee", Sortable: true, Filterable: true},
	{Key: "name", Header: "Skill", Sortable: true},
	{Key: "category", Header: "Category", Filterable: true, Options: []string{"TECHNICAL", "SOFT", "LANGUAGE", "MANAGEMENT"}},
	{Key: "level", Header: "Level", Sortable: true, Filterable: true, Options: []string{"BEGINNER", "INTERMEDIATE", "ADVANCED", "EXPERT"}},
	{Key: "yearsOfExperience", Header: "Years", Sortable: true},
	{Key: "certified", Header: "Certified",
		Render: func(s domain.Skill) string { return yesNo(s.Certified) }},
}

func skillSeed() []domain.Skill {
	return []domain.Skill{
		{EmployeeID: 1, Name: "Go", Category: "TECHNICAL", Level: "EXPERT", YearsOfExp: 9, LastAssessed: "2026-03-01"},
		{EmployeeID: 1, Name: "People management", Category: "MANAGEMENT", Level: "ADVANCED", YearsOfExp: 6},
		{EmployeeID: 2, Name: "Kubernetes", Category: "TECHNICAL", Level: "EXPERT", YearsOfExp: 7, Certified: true, LastAssessed: "2025-11-12"},
		{EmployeeID: 3, Name: "IFRS reporting", Category: "TECHNICAL", Level: "ADVANCED", YearsOfExp: 10, Certified: true},
		{EmployeeID: 8, Name: "German", Category: "LANGUAGE", Level: "INTERMEDIATE", YearsOfExp: 2},
	}
}

func trainingDef() *resource.Definition[domain.Training] {
	return &resource.Definition[domain.Training]{
		Name:  "training",
		Path:  "trainings",
		Title: "Trainings",
		Equal: []string{"mode", "status", "provider"},
		Ranges: []resource.Range{
			{Param: "startDateFrom", Field: "startDate", Op: resource.AtLeast},
			{Param: "startDateTo", Field: "startDate", Op: resource.AtMost},
		},
		Search: []string{"title", "description", "provider"},
		Actions: map[string]resource.Action[domain.Training]{
			"cancel": (*domain.Training).Cancel,
		},
	}
}

var trainingColumns = []table.Column[domain.Training]{
	{Key: "title", Header: "Title", Sortable: true},
	{Key: "provider", Header: "Provider", Sortable: true},
	{Key: "mode", Header: "Mode", Filterable: true, Options: []string{"CLASSROOM", "ONLINE", "HYBRID"}},
	{Key: "startDate", Header: "Starts", Sortable: true},
	{Key: "capacity", Header: "Seats", Sortable: true},
	{Key: "cost", Header: "Cost", Sortable: true,
		Render: func(t domain.Training) string { return money(t.Cost) }},
	{Key: "status", Header: "Status", Sortable: true, Filterable: true,
		Options: []string{domain.TrainingPlanned, domain.TrainingOngoing, domain.TrainingCompleted, domain.TrainingCancelled}},
}

func trainingSeed() []domain.Training {
	return []domain.Training{
		{Title: "Secure Coding Fundamentals", Description: "OWASP top ten for backend engineers", Provider: "SecureLearn", Mode: "ONLINE", StartDate: "2026-11-02", EndDate: "2026-11-06", Capacity: 40, Cost: amount("350.00"), Status: domain.TrainingPlanned},
		{Title: "Manager Essentials", Description: "Feedback, delegation and one-on-ones", Provider: "Northwind Academy", Mode: "CLASSROOM", StartDate: "2026-10-05", EndDate: "2026-10-16", Capacity: 12, Cost: amount("1200.00"), Status: domain.TrainingOngoing},
		{Title: "Harassment Prevention", Description: "Annual mandatory training", Provider: "ComplyCo", Mode: "HYBRID", StartDate: "2026-03-09", EndDate: "2026-03-09", Capacity: 200, Cost: amount("25.00"), Status: domain.TrainingCompleted},
	}
}
