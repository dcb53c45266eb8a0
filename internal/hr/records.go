package hr

import (
	"github.com/dustin/go-humanize"

	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/resource"
	"github.com/simp-lee/hrdesk/internal/table"
)

func documentDef() *resource.Definition[domain.Document] {
	return &resource.Definition[domain.Document]{
		Name:  "document",
		Path:  "documents",
		Title: "Documents",
		Equal: []string{"employeeId", "category", "mimeType"},
		Ranges: []resource.Range{
			{Param: "expiresBefore", Field: "expiresOn", Op: resource.AtMost},
		},
		Search: []string{"title", "description", "fileName"},
	}
}

var documentColumns = []table.Column[domain.Document]{
	{Key: "title", Header: "Title", Sortable: true},
	{Key: "category", Header: "Category", Filterable: true, Options: []string{"CONTRACT", "ID", "CERTIFICATE", "POLICY", "OTHER"}},
	{Key: "employeeId", Header: "Employee", Filterable: true,
		Render: func(d domain.Document) string { return ref(d.EmployeeID) }},
	{Key: "fileName", Header: "File"},
	{Key: "sizeBytes", Header: "Size", Sortable: true,
		Render: func(d domain.Document) string { return humanize.IBytes(uint64(max(d.SizeBytes, 0))) }},
	{Key: "expiresOn", Header: "Expires", Sortable: true},
}

func documentSeed() []domain.Document {
	return []domain.Document{
		{EmployeeID: idPtr(4), Title: "Employment contract", Category: "CONTRACT", FileName: "turing-contract.pdf", MimeType: "application/pdf", SizeBytes: 184320, StorageKey: "5d0c1e4a-6b2f-4f1e-9a3b-1c2d3e4f5a61"},
		{EmployeeID: idPtr(8), Title: "Work permit", Category: "ID", FileName: "dijkstra-permit.pdf", MimeType: "application/pdf", SizeBytes: 96256, StorageKey: "8e7f6a5b-4c3d-4b2a-9f1e-0d9c8b7a6f52", ExpiresOn: "2027-07-31"},
		{EmployeeID: idPtr(2), Title: "CKA certificate", Category: "CERTIFICATE", FileName: "hopper-cka.png", MimeType: "image/png", SizeBytes: 412000, StorageKey: "1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c53", ExpiresOn: "2026-11-12"},
		{Title: "Travel policy", Description: "Company travel and expense policy", Category: "POLICY", FileName: "travel-policy.pdf", MimeType: "application/pdf", SizeBytes: 2516582, StorageKey: "9f8e7d6c-5b4a-4392-8170-6f5e4d3c2b14"},
	}
}

func complianceDef() *resource.Definition[domain.Compliance] {
	return &resource.Definition[domain.Compliance]{
		Name:  "compliance item",
		Path:  "compliance",
		Title: "Compliance",
		Equal: []string{"status", "regulation", "ownerId"},
		Ranges: []resource.Range{
			{Param: "dueBefore", Field: "dueDate", Op: resource.AtMost},
			{Param: "dueAfter", Field: "dueDate", Op: resource.AtLeast},
		},
		Search: []string{"title", "regulation", "description"},
		Actions: map[string]resource.Action[domain.Compliance]{
			"mark-compliant": (*domain.Compliance).MarkCompliant,
		},
	}
}

var complianceColumns = []table.Column[domain.Compliance]{
	{Key: "title", Header: "Title", Sortable: true},
	{Key: "regulation", Header: "Regulation", Sortable: true, Filterable: true},
	{Key: "ownerId", Header: "Owner",
		Render: func(c domain.Compliance) string { return ref(c.OwnerID) }},
	{Key: "dueDate", Header: "Due", Sortable: true},
	{Key: "status", Header: "Status", Sortable: true, Filterable: true,
		Options: []string{domain.CompliancePending, domain.ComplianceCompliant, domain.ComplianceNonCompliant}},
	{Key: "verifiedOn", Header: "Verified"},
}

func complianceSeed() []domain.Compliance {
	return []domain.Compliance{
		{Title: "I-9 verification for new hires", Regulation: "IRCA", OwnerID: idPtr(5), DueDate: "2026-06-30", Status: domain.ComplianceCompliant, VerifiedOn: "2026-06-12"},
		{Title: "Annual harassment training", Regulation: "State law", OwnerID: idPtr(5), DueDate: "2026-12-31", Status: domain.CompliancePending},
		{Title: "GDPR records of processing", Regulation: "GDPR", Description: "Update the employee data inventory", OwnerID: idPtr(8), DueDate: "2026-09-30", Status: domain.ComplianceNonCompliant},
	}
}

func benefitDef() *resource.Definition[domain.Benefit] {
	return &resource.Definition[domain.Benefit]{
		Name:   "benefit",
		Path:   "benefits",
		Title:  "Benefits",
		Equal:  []string{"type", "active", "provider"},
		Search: []string{"name", "provider", "description"},
	}
}

var benefitColumns = []table.Column[domain.Benefit]{
	{Key: "name", Header: "Name", Sortable: true},
	{Key: "type", Header: "Type", Filterable: true, Options: []string{"HEALTH", "DENTAL", "RETIREMENT", "LIFE", "WELLNESS", "OTHER"}},
	{Key: "provider", Header: "Provider", Sortable: true},
	{Key: "employerContribution", Header: "Employer", Sortable: true,
		Render: func(b domain.Benefit) string { return money(b.EmployerContribution) }},
	{Key: "employeeContribution", Header: "Employee",
		Render: func(b domain.Benefit) string { return money(b.EmployeeContribution) }},
	{Key: "active", Header: "Active", Filterable: true, Options: []string{"true", "false"},
		Render: func(b domain.Benefit) string { return yesNo(b.Active) }},
}

func benefitSeed() []domain.Benefit {
	return []domain.Benefit{
		{Name: "PPO Health Plan", Type: "HEALTH", Provider: "BlueHarbor", EmployerContribution: amount("650.00"), EmployeeContribution: amount("120.00"), Active: true},
		{Name: "Dental Plus", Type: "DENTAL", Provider: "SmileCare", EmployerContribution: amount("45.00"), EmployeeContribution: amount("10.00"), Active: true},
		{Name: "401(k) Match", Type: "RETIREMENT", Provider: "Fidelis", Description: "100% match up to 4% of salary", EmployerContribution: amount("0"), EmployeeContribution: amount("0"), Active: true},
		{Name: "Gym Stipend", Type: "WELLNESS", EmployerContribution: amount("50.00"), EmployeeContribution: amount("0"), Active: false},
	}
}

func assetDef() *resource.Definition[domain.Asset] {
	return &resource.Definition[domain.Asset]{
		Name:  "asset",
		Path:  "assets",
		Title: "Assets",
		Equal: []string{"category", "status", "assignedTo"},
		Ranges: []resource.Range{
			{Param: "purchasedFrom", Field: "purchaseDate", Op: resource.AtLeast},
			{Param: "purchasedTo", Field: "purchaseDate", Op: resource.AtMost},
		},
		Search: []string{"tag", "name", "serialNumber"},
		Actions: map[string]resource.Action[domain.Asset]{
			"return": (*domain.Asset).Return,
			"retire": (*domain.Asset).Retire,
		},
	}
}

var assetColumns = []table.Column[domain.Asset]{
	{Key: "tag", Header: "Tag", Sortable: true},
	{Key: "name", Header: "Name", Sortable: true},
	{Key: "category", Header: "Category", Filterable: true, Options: []string{"LAPTOP", "PHONE", "MONITOR", "VEHICLE", "FURNITURE", "OTHER"}},
	{Key: "assignedTo", Header: "Assigned to", Filterable: true,
		Render: func(a domain.Asset) string { return ref(a.AssignedTo) }},
	{Key: "status", Header: "Status", Sortable: true, Filterable: true,
		Options: []string{domain.AssetAvailable, domain.AssetAssigned, domain.AssetRetired}},
	{Key: "purchaseValue", Header: "Value", Sortable: true,
		Render: func(a domain.Asset) string { return money(a.PurchaseValue) }},
}

func assetSeed() []domain.Asset {
	return []domain.Asset{
		{Tag: "LT-0001", Name: "MacBook Pro 16", Category: "LAPTOP", SerialNumber: "C02XK1JHMD6T", AssignedTo: idPtr(1), Status: domain.AssetAssigned, PurchaseDate: "2024-02-14", PurchaseValue: amount("3199.00")},
		{Tag: "LT-0002", Name: "ThinkPad X1 Carbon", Category: "LAPTOP", SerialNumber: "PF3K9Z2Q", AssignedTo: idPtr(4), Status: domain.AssetAssigned, PurchaseDate: "2024-09-03", PurchaseValue: amount("1899.00")},
		{Tag: "MN-0007", Name: "Dell UltraSharp 27", Category: "MONITOR", SerialNumber: "CN0G2D3K", Status: domain.AssetAvailable, PurchaseDate: "2023-05-22", PurchaseValue: amount("529.99")},
		{Tag: "PH-0003", Name: "iPhone 13", Category: "PHONE", SerialNumber: "F17GQ2XWPLJM", Status: domain.AssetRetired, PurchaseDate: "2021-10-01", PurchaseValue: amount("799.00")},
	}
}

func expenseDef() *resource.Definition[domain.Expense] {
	return &resource.Definition[domain.Expense]{
		Name:  "expense",
		Path:  "expenses",
		Title: "Expenses",
		Equal: []string{"employeeId", "category", "status", "currency"},
		Ranges: []resource.Range{
			{Param: "incurredFrom", Field: "incurredOn", Op: resource.AtLeast},
			{Param: "incurredTo", Field: "incurredOn", Op: resource.AtMost},
		},
		Search: []string{"description"},
		Actions: map[string]resource.Action[domain.Expense]{
			"approve":   (*domain.Expense).Approve,
			"reject":    (*domain.Expense).Reject,
			"reimburse": (*domain.Expense).Reimburse,
		},
	}
}

var expenseColumns = []table.Column[domain.Expense]{
	{Key: "incurredOn", Header: "Date", Sortable: true},
	{Key: "employeeId", Header: "Employee", Sortable: true, Filterable: true},
	{Key: "category", Header: "Category", Filterable: true, Options: []string{"TRAVEL", "MEALS", "EQUIPMENT", "TRAINING", "OTHER"}},
	{Key: "description", Header: "Description"},
	{Key: "amount", Header: "Amount", Sortable: true,
		Render: func(e domain.Expense) string { return money(e.Amount) + " " + e.Currency }},
	{Key: "status", Header: "Status", Sortable: true, Filterable: true,
		Options: []string{domain.ExpensePending, domain.ExpenseApproved, domain.ExpenseRejected, domain.ExpenseReimbursed}},
}

func expenseSeed() []domain.Expense {
	return []domain.Expense{
		{EmployeeID: 4, Category: "TRAVEL", Description: "Flight to GopherCon", Amount: amount("412.60"), Currency: "USD", IncurredOn: "2026-08-26", Status: domain.ExpenseReimbursed, DecidedOn: "2026-09-02"},
		{EmployeeID: 2, Category: "EQUIPMENT", Description: "Standing desk", Amount: amount("649.00"), Currency: "USD", IncurredOn: "2026-09-18", Status: domain.ExpenseApproved, DecidedOn: "2026-09-20"},
		{EmployeeID: 7, Category: "MEALS", Description: "Quarter close team dinner", Amount: amount("186.40"), Currency: "USD", IncurredOn: "2026-10-01", Status: domain.ExpensePending},
		{EmployeeID: 8, Category: "TRAINING", Description: "Conference ticket", Amount: amount("299.00"), Currency: "EUR", IncurredOn: "2026-10-07", Status: domain.ExpensePending},
		{EmployeeID: 9, Category: "OTHER", Description: "Personal phone bill", Amount: amount("75.00"), Currency: "USD", IncurredOn: "2026-09-30", Status: domain.ExpenseRejected, DecidedOn: "2026-10-02"},
	}
}
