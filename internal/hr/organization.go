package hr

import (
	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/resource"
	"github.com/simp-lee/hrdesk/internal/table"
)

func organizationDef() *resource.Definition[domain.Organization] {
	return &resource.Definition[domain.Organization]{
		Name:   "organization",
		Path:   "organizations",
		Title:  "Organizations",
		Equal:  []string{"country", "industry", "active"},
		Search: []string{"name", "code"},
	}
}

var organizationColumns = []table.Column[domain.Organization]{
	{Key: "code", Header: "Code", Sortable: true},
	{Key: "name", Header: "Name", Sortable: true},
	{Key: "industry", Header: "Industry", Sortable: true, Filterable: true},
	{Key: "country", Header: "Country", Sortable: true, Filterable: true},
	{Key: "active", Header: "Active", Filterable: true, Options: []string{"true", "false"},
		Render: func(o domain.Organization) string { return yesNo(o.Active) }},
}

func organizationSeed() []domain.Organization {
	return []domain.Organization{
		{BaseModel: domain.BaseModel{ID: 1}, Name: "Northwind Holdings", Code: "NWH", Industry: "Retail", Country: "US", Website: "https://northwind.example.com", Active: true},
		{BaseModel: domain.BaseModel{ID: 2}, Name: "Contoso Labs", Code: "CTL", Industry: "Software", Country: "DE", Website: "https://contoso.example.com", Active: true},
		{BaseModel: domain.BaseModel{ID: 3}, Name: "Fabrikam Logistics", Code: "FBL", Industry: "Logistics", Country: "GB", Active: false},
	}
}

func departmentDef() *resource.Definition[domain.Department] {
	return &resource.Definition[domain.Department]{
		Name:   "department",
		Path:   "departments",
		Title:  "Departments",
		Equal:  []string{"organizationId", "parentId", "status"},
		Search: []string{"name", "code", "description"},
	}
}

var departmentColumns = []table.Column[domain.Department]{
	{Key: "code", Header: "Code", Sortable: true},
	{Key: "name", Header: "Name", Sortable: true},
	{Key: "organizationId", Header: "Organization", Sortable: true, Filterable: true},
	{Key: "managerId", Header: "Manager",
		Render: func(d domain.Department) string { return ref(d.ManagerID) }},
	{Key: "budget", Header: "Budget", Sortable: true,
		Render: func(d domain.Department) string { return money(d.Budget) }},
	{Key: "status", Header: "Status", Sortable: true, Filterable: true, Options: []string{"ACTIVE", "INACTIVE"}},
}

func departmentSeed() []domain.Department {
	return []domain.Department{
		{BaseModel: domain.BaseModel{ID: 1}, OrganizationID: 1, ManagerID: idPtr(1), Name: "Engineering", Code: "ENG", Description: "Product and platform engineering", Budget: amount("1250000"), Status: "ACTIVE"},
		{BaseModel: domain.BaseModel{ID: 2}, OrganizationID: 1, ManagerID: idPtr(3), Name: "Finance", Code: "FIN", Description: "Accounting, payroll and treasury", Budget: amount("420000"), Status: "ACTIVE"},
		{BaseModel: domain.BaseModel{ID: 3}, OrganizationID: 1, ManagerID: idPtr(5), Name: "People Operations", Code: "HR", Description: "Hiring, onboarding and employee relations", Budget: amount("310000"), Status: "ACTIVE"},
		{BaseModel: domain.BaseModel{ID: 4}, OrganizationID: 1, ParentID: idPtr(1), Name: "Platform", Code: "ENG-PLT", Description: "Infrastructure and developer tooling", Budget: amount("540000"), Status: "ACTIVE"},
		{BaseModel: domain.BaseModel{ID: 5}, OrganizationID: 2, Name: "Research", Code: "RND", Description: "Applied research", Budget: amount("800000"), Status: "ACTIVE"},
		{BaseModel: domain.BaseModel{ID: 6}, OrganizationID: 3, Name: "Fleet", Code: "FLT", Budget: amount("0"), Status: "INACTIVE"},
	}
}

func locationDef() *resource.Definition[domain.Location] {
	return &resource.Definition[domain.Location]{
		Name:   "location",
		Path:   "locations",
		Title:  "Locations",
		Equal:  []string{"organizationId", "type", "country"},
		Search: []string{"name", "code", "city"},
	}
}

var locationColumns = []table.Column[domain.Location]{
	{Key: "code", Header: "Code", Sortable: true},
	{Key: "name", Header: "Name", Sortable: true},
	{Key: "type", Header: "Type", Sortable: true, Filterable: true, Options: []string{"HEADQUARTERS", "BRANCH", "REMOTE", "WAREHOUSE"}},
	{Key: "city", Header: "City", Sortable: true},
	{Key: "country", Header: "Country", Sortable: true, Filterable: true},
	{Key: "timezone", Header: "Timezone"},
}

func locationSeed() []domain.Location {
	return []domain.Location{
		{BaseModel: domain.BaseModel{ID: 1}, OrganizationID: 1, Name: "Seattle HQ", Code: "SEA", Type: "HEADQUARTERS", Address: "400 Pine St", City: "Seattle", Country: "US", Timezone: "America/Los_Angeles"},
		{BaseModel: domain.BaseModel{ID: 2}, OrganizationID: 1, Name: "Austin Office", Code: "AUS", Type: "BRANCH", Address: "200 Congress Ave", City: "Austin", Country: "US", Timezone: "America/Chicago"},
		{BaseModel: domain.BaseModel{ID: 3}, OrganizationID: 2, Name: "Berlin Lab", Code: "BER", Type: "BRANCH", Address: "Torstrasse 49", City: "Berlin", Country: "DE", Timezone: "Europe/Berlin"},
		{BaseModel: domain.BaseModel{ID: 4}, OrganizationID: 1, Name: "Remote", Code: "RMT", Type: "REMOTE", Timezone: "UTC"},
	}
}
