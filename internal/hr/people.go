package hr

import (
	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/resource"
	"github.com/simp-lee/hrdesk/internal/table"
)

func employeeDef() *resource.Definition[domain.Employee] {
	return &resource.Definition[domain.Employee]{
		Name:  "employee",
		Path:  "employees",
		Title: "Employees",
		Equal: []string{"status", "departmentId", "locationId", "managerId", "employmentType"},
		Ranges: []resource.Range{
			{Param: "hireDateFrom", Field: "hireDate", Op: resource.AtLeast},
			{Param: "hireDateTo", Field: "hireDate", Op: resource.AtMost},
		},
		Search: []string{"firstName", "lastName", "email", "employeeCode", "jobTitle"},
		Actions: map[string]resource.Action[domain.Employee]{
			"activate":  (*domain.Employee).Activate,
			"leave":     (*domain.Employee).Leave,
			"terminate": (*domain.Employee).Terminate,
		},
	}
}

var employeeColumns = []table.Column[domain.Employee]{
	{Key: "employeeCode", Header: "Code", Sortable: true},
	{Key: "lastName", Header: "Name", Sortable: true,
		Render: func(e domain.Employee) string { return e.FirstName + " " + e.LastName }},
	{Key: "email", Header: "Email", Sortable: true},
	{Key: "jobTitle", Header: "Title", Sortable: true},
	{Key: "departmentId", Header: "Department", Filterable: true,
		Render: func(e domain.Employee) string { return ref(e.DepartmentID) }},
	{Key: "employmentType", Header: "Type", Filterable: true, Options: []string{"FULL_TIME", "PART_TIME", "CONTRACT", "INTERN"}},
	{Key: "status", Header: "Status", Sortable: true, Filterable: true,
		Options: []string{domain.EmployeeActive, domain.EmployeeOnLeave, domain.EmployeeTerminated}},
	{Key: "hireDate", Header: "Hired", Sortable: true},
}

func employeeSeed() []domain.Employee {
	return []domain.Employee{
		{BaseModel: domain.BaseModel{ID: 1}, EmployeeCode: "E001", FirstName: "Ada", LastName: "Lovelace", Email: "ada.lovelace@northwind.example.com", Phone: "+1 206 555 0101", JobTitle: "VP Engineering", DepartmentID: idPtr(1), LocationID: idPtr(1), EmploymentType: "FULL_TIME", Status: domain.EmployeeActive, HireDate: "2018-02-05", Salary: amount("215000")},
		{BaseModel: domain.BaseModel{ID: 2}, EmployeeCode: "E002", FirstName: "Grace", LastName: "Hopper", Email: "grace.hopper@northwind.example.com", Phone: "+1 206 555 0102", JobTitle: "Staff Engineer", DepartmentID: idPtr(4), LocationID: idPtr(1), ManagerID: idPtr(1), EmploymentType: "FULL_TIME", Status: domain.EmployeeOnLeave, HireDate: "2019-06-17", Salary: amount("182000")},
		{BaseModel: domain.BaseModel{ID: 3}, EmployeeCode: "E003", FirstName: "Katherine", LastName: "Johnson", Email: "katherine.johnson@northwind.example.com", JobTitle: "Finance Director", DepartmentID: idPtr(2), LocationID: idPtr(2), EmploymentType: "FULL_TIME", Status: domain.EmployeeActive, HireDate: "2017-09-11", Salary: amount("168000")},
		{BaseModel: domain.BaseModel{ID: 4}, EmployeeCode: "E004", FirstName: "Alan", LastName: "Turing", Email: "alan.turing@northwind.example.com", JobTitle: "Software Engineer", DepartmentID: idPtr(4), LocationID: idPtr(4), ManagerID: idPtr(2), EmploymentType: "FULL_TIME", Status: domain.EmployeeActive, HireDate: "2021-01-10", Salary: amount("145000")},
		{BaseModel: domain.BaseModel{ID: 5}, EmployeeCode: "E005", FirstName: "Mary", LastName: "Jackson", Email: "mary.jackson@northwind.example.com", JobTitle: "Head of People", DepartmentID: idPtr(3), LocationID: idPtr(1), EmploymentType: "FULL_TIME", Status: domain.EmployeeActive, HireDate: "2020-03-02", Salary: amount("158000")},
		{BaseModel: domain.BaseModel{ID: 6}, EmployeeCode: "E006", FirstName: "Linus", LastName: "Torvalds", Email: "linus.torvalds@northwind.example.com", JobTitle: "Contract Engineer", DepartmentID: idPtr(4), LocationID: idPtr(4), ManagerID: idPtr(2), EmploymentType: "CONTRACT", Status: domain.EmployeeTerminated, HireDate: "2022-11-30", Salary: amount("120000")},
		{BaseModel: domain.BaseModel{ID: 7}, EmployeeCode: "E007", FirstName: "Dorothy", LastName: "Vaughan", Email: "dorothy.vaughan@northwind.example.com", JobTitle: "Accountant", DepartmentID: idPtr(2), LocationID: idPtr(2), ManagerID: idPtr(3), EmploymentType: "PART_TIME", Status: domain.EmployeeActive, HireDate: "2023-04-24", Salary: amount("64000")},
		{BaseModel: domain.BaseModel{ID: 8}, EmployeeCode: "E008", FirstName: "Edsger", LastName: "Dijkstra", Email: "edsger.dijkstra@contoso.example.com", JobTitle: "Research Scientist", DepartmentID: idPtr(5), LocationID: idPtr(3), EmploymentType: "FULL_TIME", Status: domain.EmployeeActive, HireDate: "2024-08-01", Salary: amount("132000")},
		{BaseModel: domain.BaseModel{ID: 9}, EmployeeCode: "E009", FirstName: "Barbara", LastName: "Liskov", Email: "barbara.liskov@northwind.example.com", JobTitle: "Engineering Intern", DepartmentID: idPtr(1), LocationID: idPtr(1), ManagerID: idPtr(1), EmploymentType: "INTERN", Status: domain.EmployeeActive, HireDate: "2025-06-09", Salary: amount("48000")},
	}
}

func employmentHistoryDef() *resource.Definition[domain.EmploymentHistory] {
	return &resource.Definition[domain.EmploymentHistory]{
		Name:  "employment history",
		Path:  "employment-history",
		Title: "Employment History",
		Equal: []string{"employeeId", "changeType", "departmentId"},
		Ranges: []resource.Range{
			{Param: "startDateFrom", Field: "startDate", Op: resource.AtLeast},
			{Param: "startDateTo", Field: "startDate", Op: resource.AtMost},
		},
		Search: []string{"jobTitle", "notes"},
	}
}

var employmentHistoryColumns = []table.Column[domain.EmploymentHistory]{
	{Key: "employeeId", Header: "Employee", Sortable: true, Filterable: true},
	{Key: "changeType", Header: "Change", Sortable: true, Filterable: true, Options: []string{"HIRE", "PROMOTION", "TRANSFER", "DEMOTION", "RATE_CHANGE"}},
	{Key: "jobTitle", Header: "Title"},
	{Key: "departmentId", Header: "Department",
		Render: func(h domain.EmploymentHistory) string { return ref(h.DepartmentID) }},
	{Key: "startDate", Header: "From", Sortable: true},
	{Key: "endDate", Header: "To", Sortable: true},
}

func employmentHistorySeed() []domain.EmploymentHistory {
	return []domain.EmploymentHistory{
		{EmployeeID: 1, ChangeType: "HIRE", JobTitle: "Engineering Manager", DepartmentID: idPtr(1), StartDate: "2018-02-05", EndDate: "2020-12-31"},
		{EmployeeID: 1, ChangeType: "PROMOTION", JobTitle: "VP Engineering", DepartmentID: idPtr(1), StartDate: "2021-01-01", Notes: "Promoted after platform reorganization"},
		{EmployeeID: 2, ChangeType: "HIRE", JobTitle: "Senior Engineer", DepartmentID: idPtr(1), StartDate: "2019-06-17", EndDate: "2022-03-31"},
		{EmployeeID: 2, ChangeType: "TRANSFER", JobTitle: "Staff Engineer", DepartmentID: idPtr(4), StartDate: "2022-04-01"},
		{EmployeeID: 7, ChangeType: "HIRE", JobTitle: "Accountant", DepartmentID: idPtr(2), StartDate: "2023-04-24"},
	}
}

func bankDetailsDef() *resource.Definition[domain.BankDetails] {
	return &resource.Definition[domain.BankDetails]{
		Name:   "bank details",
		Path:   "bank-details",
		Title:  "Bank Details",
		Equal:  []string{"employeeId", "currency", "primary"},
		Search: []string{"bankName", "accountHolder"},
	}
}

var bankDetailsColumns = []table.Column[domain.BankDetails]{
	{Key: "employeeId", Header: "Employee", Sortable: true, Filterable: true},
	{Key: "bankName", Header: "Bank", Sortable: true},
	{Key: "accountHolder", Header: "Holder"},
	{Key: "accountNumber", Header: "Account",
		Render: func(b domain.BankDetails) string { return maskAccount(b.AccountNumber) }},
	{Key: "currency", Header: "Currency", Filterable: true},
	{Key: "primary", Header: "Primary",
		Render: func(b domain.BankDetails) string { return yesNo(b.Primary) }},
}

// maskAccount keeps only the last four characters of an account number.
func maskAccount(n string) string {
	if len(n) <= 4 {
		return n
	}
	return "****" + n[len(n)-4:]
}

func bankDetailsSeed() []domain.BankDetails {
	return []domain.BankDetails{
		{EmployeeID: 1, BankName: "First Federal", AccountHolder: "Ada Lovelace", AccountNumber: "004512349871", RoutingCode: "125000024", Currency: "USD", Primary: true},
		{EmployeeID: 3, BankName: "Cascade Credit Union", AccountHolder: "Katherine Johnson", AccountNumber: "778812340044", RoutingCode: "325081403", Currency: "USD", Primary: true},
		{EmployeeID: 8, BankName: "Berliner Sparkasse", AccountHolder: "Edsger Dijkstra", AccountNumber: "DE89370400440532013000", RoutingCode: "BELADEBEXXX", Currency: "EUR", Primary: true},
	}
}

func exitDef() *resource.Definition[domain.Exit] {
	return &resource.Definition[domain.Exit]{
		Name:   "exit",
		Path:   "exits",
		Title:  "Exits",
		Equal:  []string{"employeeId", "exitType", "status"},
		Search: []string{"reason"},
		Actions: map[string]resource.Action[domain.Exit]{
			"complete": (*domain.Exit).Complete,
		},
	}
}

var exitColumns = []table.Column[domain.Exit]{
	{Key: "employeeId", Header: "Employee", Sortable: true, Filterable: true},
	{Key: "exitType", Header: "Type", Filterable: true, Options: []string{"RESIGNATION", "TERMINATION", "RETIREMENT", "CONTRACT_END"}},
	{Key: "noticeDate", Header: "Notice", Sortable: true},
	{Key: "lastWorkingDay", Header: "Last day", Sortable: true},
	{Key: "status", Header: "Status", Sortable: true, Filterable: true,
		Options: []string{domain.ExitInitiated, domain.ExitInProgress, domain.ExitCompleted}},
	{Key: "exitInterviewDone", Header: "Interview",
		Render: func(x domain.Exit) string { return yesNo(x.ExitInterviewDone) }},
}

func exitSeed() []domain.Exit {
	return []domain.Exit{
		{EmployeeID: 6, ExitType: "CONTRACT_END", NoticeDate: "2025-09-01", LastWorkingDay: "2025-09-30", Reason: "Contract not renewed", Status: domain.ExitCompleted, ExitInterviewDone: true},
		{EmployeeID: 2, ExitType: "RESIGNATION", NoticeDate: "2026-09-15", LastWorkingDay: "2026-11-13", Reason: "Relocating abroad", Status: domain.ExitInProgress},
	}
}
