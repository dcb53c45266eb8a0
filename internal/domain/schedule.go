package domain

import "time"

// Attendance is one employee's presence record for a day.
type Attendance struct {
	BaseModel
	EmployeeID uint   `gorm:"index;not null" json:"employeeId"`
	Date       string `gorm:"size:10;index" json:"date"`
	CheckIn    string `gorm:"size:5" json:"checkIn"`
	CheckOut   string `gorm:"size:5" json:"checkOut"`
	Status     string `gorm:"size:20" json:"status"`
	ShiftID    *uint  `json:"shiftId"`
	Notes      string `gorm:"size:500" json:"notes"`
}

type AttendanceCreate struct {
	EmployeeID uint   `json:"employeeId" form:"employeeId" binding:"required" label:"Employee ID"`
	Date       string `json:"date" form:"date" binding:"required" label:"Date" input:"date"`
	CheckIn    string `json:"checkIn" form:"checkIn" label:"Check in" input:"time"`
	CheckOut   string `json:"checkOut" form:"checkOut" label:"Check out" input:"time"`
	Status     string `json:"status" form:"status" label:"Status" options:"PRESENT|ABSENT|LATE|REMOTE|HALF_DAY"`
	ShiftID    *uint  `json:"shiftId" form:"shiftId" label:"Shift ID"`
	Notes      string `json:"notes" form:"notes" label:"Notes" input:"textarea"`
}

func (c AttendanceCreate) Build() Attendance {
	status := c.Status
	if status == "" {
		status = "PRESENT"
	}
	return Attendance{
		EmployeeID: c.EmployeeID,
		Date:       c.Date,
		CheckIn:    c.CheckIn,
		CheckOut:   c.CheckOut,
		Status:     status,
		ShiftID:    ref(c.ShiftID),
		Notes:      c.Notes,
	}
}

type AttendanceUpdate struct {
	Date     *string `json:"date" form:"date"`
	CheckIn  *string `json:"checkIn" form:"checkIn"`
	CheckOut *string `json:"checkOut" form:"checkOut"`
	Status   *string `json:"status" form:"status"`
	ShiftID  *uint   `json:"shiftId" form:"shiftId"`
	Notes    *string `json:"notes" form:"notes"`
}

func (u AttendanceUpdate) Apply(a *Attendance) {
	patch(&a.Date, u.Date)
	patch(&a.CheckIn, u.CheckIn)
	patch(&a.CheckOut, u.CheckOut)
	patch(&a.Status, u.Status)
	patchRef(&a.ShiftID, u.ShiftID)
	patch(&a.Notes, u.Notes)
}

// CheckOutNow stamps the current UTC time as the check-out time.
func (a *Attendance) CheckOutNow() error {
	if a.CheckOut != "" {
		return invalidTransition("attendance", "check out", "CHECKED_OUT")
	}
	a.CheckOut = time.Now().UTC().Format("15:04")
	return nil
}

// Shift is a named working-hours template.
type Shift struct {
	BaseModel
	Name         string `gorm:"size:80;not null" json:"name"`
	Code         string `gorm:"size:20" json:"code"`
	StartTime    string `gorm:"size:5" json:"startTime"`
	EndTime      string `gorm:"size:5" json:"endTime"`
	BreakMinutes int    `json:"breakMinutes"`
	Active       bool   `json:"active"`
}

type ShiftCreate struct {
	Name         string `json:"name" form:"name" binding:"required" label:"Name"`
	Code         string `json:"code" form:"code" label:"Code"`
	StartTime    string `json:"startTime" form:"startTime" binding:"required" label:"Start" input:"time"`
	EndTime      string `json:"endTime" form:"endTime" binding:"required" label:"End" input:"time"`
	BreakMinutes int    `json:"breakMinutes" form:"breakMinutes" label:"Break (minutes)"`
	Active       bool   `json:"active" form:"active" label:"Active"`
}

func (c ShiftCreate) Build() Shift {
	return Shift{
		Name:         c.Name,
		Code:         c.Code,
		StartTime:    c.StartTime,
		EndTime:      c.EndTime,
		BreakMinutes: c.BreakMinutes,
		Active:       c.Active,
	}
}

type ShiftUpdate struct {
	Name         *string `json:"name" form:"name"`
	Code         *string `json:"code" form:"code"`
	StartTime    *string `json:"startTime" form:"startTime"`
	EndTime      *string `json:"endTime" form:"endTime"`
	BreakMinutes *int    `json:"breakMinutes" form:"breakMinutes"`
	Active       *bool   `json:"active" form:"active"`
}

func (u ShiftUpdate) Apply(s *Shift) {
	patch(&s.Name, u.Name)
	patch(&s.Code, u.Code)
	patch(&s.StartTime, u.StartTime)
	patch(&s.EndTime, u.EndTime)
	patch(&s.BreakMinutes, u.BreakMinutes)
	patch(&s.Active, u.Active)
}

// Holiday is a non-working day, optionally restricted to one location.
type Holiday struct {
	BaseModel
	Name       string `gorm:"size:120;not null" json:"name"`
	Date       string `gorm:"size:10;index" json:"date"`
	Type       string `gorm:"size:20" json:"type"`
	LocationID *uint  `json:"locationId"`
	Recurring  bool   `json:"recurring"`
}

type HolidayCreate struct {
	Name       string `json:"name" form:"name" binding:"required" label:"Name"`
	Date       string `json:"date" form:"date" binding:"required" label:"Date" input:"date"`
	Type       string `json:"type" form:"type" label:"Type" options:"PUBLIC|COMPANY|OPTIONAL"`
	LocationID *uint  `json:"locationId" form:"locationId" label:"Location ID"`
	Recurring  bool   `json:"recurring" form:"recurring" label:"Recurs yearly"`
}

func (c HolidayCreate) Build() Holiday {
	return Holiday{
		Name:       c.Name,
		Date:       c.Date,
		Type:       c.Type,
		LocationID: ref(c.LocationID),
		Recurring:  c.Recurring,
	}
}

type HolidayUpdate struct {
	Name       *string `json:"name" form:"name"`
	Date       *string `json:"date" form:"date"`
	Type       *string `json:"type" form:"type"`
	LocationID *uint   `json:"locationId" form:"locationId"`
	Recurring  *bool   `json:"recurring" form:"recurring"`
}

func (u HolidayUpdate) Apply(h *Holiday) {
	patch(&h.Name, u.Name)
	patch(&h.Date, u.Date)
	patch(&h.Type, u.Type)
	patchRef(&h.LocationID, u.LocationID)
	patch(&h.Recurring, u.Recurring)
}
