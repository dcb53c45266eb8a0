package hr

import (
	"strconv"

	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/resource"
	"github.com/simp-lee/hrdesk/internal/table"
)

func attendanceDef() *resource.Definition[domain.Attendance] {
	return &resource.Definition[domain.Attendance]{
		Name:  "attendance",
		Path:  "attendance",
		Title: "Attendance",
		Equal: []string{"employeeId", "status", "shiftId", "date"},
		Ranges: []resource.Range{
			{Param: "dateFrom", Field: "date", Op: resource.AtLeast},
			{Param: "dateTo", Field: "date", Op: resource.AtMost},
		},
		Search: []string{"notes"},
		Actions: map[string]resource.Action[domain.Attendance]{
			"check-out": (*domain.Attendance).CheckOutNow,
		},
	}
}

var attendanceColumns = []table.Column[domain.Attendance]{
	{Key: "date", Header: "Date", Sortable: true},
	{Key: "employeeId", Header: "Employee", Sortable: true, Filterable: true},
	{Key: "checkIn", Header: "In"},
	{Key: "checkOut", Header: "Out"},
	{Key: "status", Header: "Status", Sortable: true, Filterable: true, Options: []string{"PRESENT", "ABSENT", "LATE", "REMOTE", "HALF_DAY"}},
	{Key: "shiftId", Header: "Shift",
		Render: func(a domain.Attendance) string { return ref(a.ShiftID) }},
}

func attendanceSeed() []domain.Attendance {
	return []domain.Attendance{
		{EmployeeID: 1, Date: "2026-10-12", CheckIn: "08:52", CheckOut: "17:31", Status: "PRESENT", ShiftID: idPtr(1)},
		{EmployeeID: 3, Date: "2026-10-12", CheckIn: "09:20", CheckOut: "17:45", Status: "LATE", ShiftID: idPtr(1), Notes: "Train delay"},
		{EmployeeID: 4, Date: "2026-10-12", CheckIn: "10:00", CheckOut: "18:05", Status: "REMOTE", ShiftID: idPtr(2)},
		{EmployeeID: 1, Date: "2026-10-13", CheckIn: "08:47", Status: "PRESENT", ShiftID: idPtr(1)},
		{EmployeeID: 7, Date: "2026-10-13", CheckIn: "09:00", CheckOut: "13:00", Status: "HALF_DAY", ShiftID: idPtr(1)},
		{EmployeeID: 5, Date: "2026-10-13", Status: "ABSENT", Notes: "Sick leave"},
	}
}

func shiftDef() *resource.Definition[domain.Shift] {
	return &resource.Definition[domain.Shift]{
		Name:   "shift",
		Path:   "shifts",
		Title:  "Shifts",
		Equal:  []string{"active"},
		Search: []string{"name", "code"},
	}
}

var shiftColumns = []table.Column[domain.Shift]{
	{Key: "code", Header: "Code", Sortable: true},
	{Key: "name", Header: "Name", Sortable: true},
	{Key: "startTime", Header: "Start", Sortable: true},
	{Key: "endTime", Header: "End"},
	{Key: "breakMinutes", Header: "Break",
		Render: func(s domain.Shift) string { return strconv.Itoa(s.BreakMinutes) + " min" }},
	{Key: "active", Header: "Active", Filterable: true, Options: []string{"true", "false"},
		Render: func(s domain.Shift) string { return yesNo(s.Active) }},
}

func shiftSeed() []domain.Shift {
	return []domain.Shift{
		{BaseModel: domain.BaseModel{ID: 1}, Name: "Day", Code: "DAY", StartTime: "09:00", EndTime: "17:30", BreakMinutes: 30, Active: true},
		{BaseModel: domain.BaseModel{ID: 2}, Name: "Late", Code: "LATE", StartTime: "10:00", EndTime: "18:30", BreakMinutes: 30, Active: true},
		{BaseModel: domain.BaseModel{ID: 3}, Name: "Night", Code: "NIGHT", StartTime: "22:00", EndTime: "06:00", BreakMinutes: 45, Active: false},
	}
}

func holidayDef() *resource.Definition[domain.Holiday] {
	return &resource.Definition[domain.Holiday]{
		Name:  "holiday",
		Path:  "holidays",
		Title: "Holidays",
		Equal: []string{"type", "locationId", "recurring"},
		Ranges: []resource.Range{
			{Param: "dateFrom", Field: "date", Op: resource.AtLeast},
			{Param: "dateTo", Field: "date", Op: resource.AtMost},
		},
		Search: []string{"name"},
	}
}

var holidayColumns = []table.Column[domain.Holiday]{
	{Key: "date", Header: "Date", Sortable: true},
	{Key: "name", Header: "Name", Sortable: true},
	{Key: "type", Header: "Type", Filterable: true, Options: []string{"PUBLIC", "COMPANY", "OPTIONAL"}},
	{Key: "locationId", Header: "Location",
		Render: func(h domain.Holiday) string {
			if h.LocationID == nil {
				return "All"
			}
			return ref(h.LocationID)
		}},
	{Key: "recurring", Header: "Recurring",
		Render: func(h domain.Holiday) string { return yesNo(h.Recurring) }},
}

func holidaySeed() []domain.Holiday {
	return []domain.Holiday{
		{Name: "New Year's Day", Date: "2026-01-01", Type: "PUBLIC", Recurring: true},
		{Name: "Independence Day", Date: "2026-07-04", Type: "PUBLIC", LocationID: idPtr(1), Recurring: true},
		{Name: "Tag der Deutschen Einheit", Date: "2026-10-03", Type: "PUBLIC", LocationID: idPtr(3), Recurring: true},
		{Name: "Company Offsite", Date: "2026-11-06", Type: "COMPANY"},
		{Name: "Christmas Eve", Date: "2026-12-24", Type: "OPTIONAL", Recurring: true},
	}
}
