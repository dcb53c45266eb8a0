package domain

import "github.com/shopspring/decimal"

// Employee statuses.
const (
	EmployeeActive     = "ACTIVE"
	EmployeeOnLeave    = "ON_LEAVE"
	EmployeeTerminated = "TERMINATED"
)

// Employee is a person on the payroll.
type Employee struct {
	BaseModel
	EmployeeCode   string          `gorm:"size:30;uniqueIndex;not null" json:"employeeCode"`
	FirstName      string          `gorm:"size:80;not null" json:"firstName"`
	LastName       string          `gorm:"size:80;not null" json:"lastName"`
	Email          string          `gorm:"size:255;not null" json:"email"`
	Phone          string          `gorm:"size:40" json:"phone"`
	JobTitle       string          `gorm:"size:120" json:"jobTitle"`
	DepartmentID   *uint           `gorm:"index" json:"departmentId"`
	LocationID     *uint           `gorm:"index" json:"locationId"`
	ManagerID      *uint           `json:"managerId"`
	EmploymentType string          `gorm:"size:20" json:"employmentType"`
	Status         string          `gorm:"size:20;index" json:"status"`
	HireDate       string          `gorm:"size:10" json:"hireDate"`
	Salary         decimal.Decimal `gorm:"type:decimal(14,2)" json:"salary"`
}

type EmployeeCreate struct {
	EmployeeCode   string          `json:"employeeCode" form:"employeeCode" binding:"required" label:"Employee code"`
	FirstName      string          `json:"firstName" form:"firstName" binding:"required" label:"First name"`
	LastName       string          `json:"lastName" form:"lastName" binding:"required" label:"Last name"`
	Email          string          `json:"email" form:"email" binding:"required" label:"Email" input:"email"`
	Phone          string          `json:"phone" form:"phone" label:"Phone"`
	JobTitle       string          `json:"jobTitle" form:"jobTitle" label:"Job title"`
	DepartmentID   *uint           `json:"departmentId" form:"departmentId" label:"Department ID"`
	LocationID     *uint           `json:"locationId" form:"locationId" label:"Location ID"`
	ManagerID      *uint           `json:"managerId" form:"managerId" label:"Manager (employee ID)"`
	EmploymentType string          `json:"employmentType" form:"employmentType" label:"Employment type" options:"FULL_TIME|PART_TIME|CONTRACT|INTERN"`
	Status         string          `json:"status" form:"status" label:"Status" options:"ACTIVE|ON_LEAVE|TERMINATED"`
	HireDate       string          `json:"hireDate" form:"hireDate" label:"Hire date" input:"date"`
	Salary         decimal.Decimal `json:"salary" form:"salary,default=0" label:"Salary"`
}

func (c EmployeeCreate) Build() Employee {
	status := c.Status
	if status == "" {
		status = EmployeeActive
	}
	return Employee{
		EmployeeCode:   c.EmployeeCode,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		JobTitle:       c.JobTitle,
		DepartmentID:   ref(c.DepartmentID),
		LocationID:     ref(c.LocationID),
		ManagerID:      ref(c.ManagerID),
		EmploymentType: c.EmploymentType,
		Status:         status,
		HireDate:       c.HireDate,
		Salary:         c.Salary,
	}
}

type EmployeeUpdate struct {
	EmployeeCode   *string          `json:"employeeCode" form:"employeeCode"`
	FirstName      *string          `json:"firstName" form:"firstName"`
	LastName       *string          `json:"lastName" form:"lastName"`
	Email          *string          `json:"email" form:"email"`
	Phone          *string          `json:"phone" form:"phone"`
	JobTitle       *string          `json:"jobTitle" form:"jobTitle"`
	DepartmentID   *uint            `json:"departmentId" form:"departmentId"`
	LocationID     *uint            `json:"locationId" form:"locationId"`
	ManagerID      *uint            `json:"managerId" form:"managerId"`
	EmploymentType *string          `json:"employmentType" form:"employmentType"`
	Status         *string          `json:"status" form:"status"`
	HireDate       *string          `json:"hireDate" form:"hireDate"`
	Salary         *decimal.Decimal `json:"salary" form:"salary,default=0"`
}

func (u EmployeeUpdate) Apply(e *Employee) {
	patch(&e.EmployeeCode, u.EmployeeCode)
	patch(&e.FirstName, u.FirstName)
	patch(&e.LastName, u.LastName)
	patch(&e.Email, u.Email)
	patch(&e.Phone, u.Phone)
	patch(&e.JobTitle, u.JobTitle)
	patchRef(&e.DepartmentID, u.DepartmentID)
	patchRef(&e.LocationID, u.LocationID)
	patchRef(&e.ManagerID, u.ManagerID)
	patch(&e.EmploymentType, u.EmploymentType)
	patch(&e.Status, u.Status)
	patch(&e.HireDate, u.HireDate)
	patch(&e.Salary, u.Salary)
}

// Activate returns an employee from leave.
func (e *Employee) Activate() error {
	if e.Status == EmployeeTerminated {
		return invalidTransition("employee", "activate", e.Status)
	}
	e.Status = EmployeeActive
	return nil
}

// Leave puts an active employee on leave.
func (e *Employee) Leave() error {
	if e.Status != EmployeeActive {
		return invalidTransition("employee", "go on leave", e.Status)
	}
	e.Status = EmployeeOnLeave
	return nil
}

// Terminate ends the employment.
func (e *Employee) Terminate() error {
	if e.Status == EmployeeTerminated {
		return invalidTransition("employee", "terminate", e.Status)
	}
	e.Status = EmployeeTerminated
	return nil
}

// EmploymentHistory records a change in an employee's position.
type EmploymentHistory struct {
	BaseModel
	EmployeeID   uint   `gorm:"index;not null" json:"employeeId"`
	ChangeType   string `gorm:"size:20" json:"changeType"`
	JobTitle     string `gorm:"size:120" json:"jobTitle"`
	DepartmentID *uint  `json:"departmentId"`
	StartDate    string `gorm:"size:10" json:"startDate"`
	EndDate      string `gorm:"size:10" json:"endDate"`
	Notes        string `gorm:"size:500" json:"notes"`
}

type EmploymentHistoryCreate struct {
	EmployeeID   uint   `json:"employeeId" form:"employeeId" binding:"required" label:"Employee ID"`
	ChangeType   string `json:"changeType" form:"changeType" binding:"required" label:"Change type" options:"HIRE|PROMOTION|TRANSFER|DEMOTION|RATE_CHANGE"`
	JobTitle     string `json:"jobTitle" form:"jobTitle" label:"Job title"`
	DepartmentID *uint  `json:"departmentId" form:"departmentId" label:"Department ID"`
	StartDate    string `json:"startDate" form:"startDate" binding:"required" label:"Start date" input:"date"`
	EndDate      string `json:"endDate" form:"endDate" label:"End date" input:"date"`
	Notes        string `json:"notes" form:"notes" label:"Notes" input:"textarea"`
}

func (c EmploymentHistoryCreate) Build() EmploymentHistory {
	return EmploymentHistory{
		EmployeeID:   c.EmployeeID,
		ChangeType:   c.ChangeType,
		JobTitle:     c.JobTitle,
		DepartmentID: ref(c.DepartmentID),
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Notes:        c.Notes,
	}
}

type EmploymentHistoryUpdate struct {
	EmployeeID   *uint   `json:"employeeId" form:"employeeId"`
	ChangeType   *string `json:"changeType" form:"changeType"`
	JobTitle     *string `json:"jobTitle" form:"jobTitle"`
	DepartmentID *uint   `json:"departmentId" form:"departmentId"`
	StartDate    *string `json:"startDate" form:"startDate"`
	EndDate      *string `json:"endDate" form:"endDate"`
	Notes        *string `json:"notes" form:"notes"`
}

func (u EmploymentHistoryUpdate) Apply(h *EmploymentHistory) {
	patch(&h.EmployeeID, u.EmployeeID)
	patch(&h.ChangeType, u.ChangeType)
	patch(&h.JobTitle, u.JobTitle)
	patchRef(&h.DepartmentID, u.DepartmentID)
	patch(&h.StartDate, u.StartDate)
	patch(&h.EndDate, u.EndDate)
	patch(&h.Notes, u.Notes)
}

// BankDetails holds an account salaries are paid into.
type BankDetails struct {
	BaseModel
	EmployeeID    uint   `gorm:"index;not null" json:"employeeId"`
	BankName      string `gorm:"size:120;not null" json:"bankName"`
	AccountHolder string `gorm:"size:120" json:"accountHolder"`
	AccountNumber string `gorm:"size:64" json:"accountNumber"`
	RoutingCode   string `gorm:"size:34" json:"routingCode"`
	Currency      string `gorm:"size:3" json:"currency"`
	Primary       bool   `json:"primary"`
}

type BankDetailsCreate struct {
	EmployeeID    uint   `json:"employeeId" form:"employeeId" binding:"required" label:"Employee ID"`
	BankName      string `json:"bankName" form:"bankName" binding:"required" label:"Bank"`
	AccountHolder string `json:"accountHolder" form:"accountHolder" label:"Account holder"`
	AccountNumber string `json:"accountNumber" form:"accountNumber" binding:"required" label:"Account number"`
	RoutingCode   string `json:"routingCode" form:"routingCode" label:"Routing / SWIFT"`
	Currency      string `json:"currency" form:"currency" label:"Currency"`
	Primary       bool   `json:"primary" form:"primary" label:"Primary account"`
}

func (c BankDetailsCreate) Build() BankDetails {
	return BankDetails{
		EmployeeID:    c.EmployeeID,
		BankName:      c.BankName,
		AccountHolder: c.AccountHolder,
		AccountNumber: c.AccountNumber,
		RoutingCode:   c.RoutingCode,
		Currency:      c.Currency,
		Primary:       c.Primary,
	}
}

type BankDetailsUpdate struct {
	EmployeeID    *uint   `json:"employeeId" form:"employeeId"`
	BankName      *string `json:"bankName" form:"bankName"`
	AccountHolder *string `json:"accountHolder" form:"accountHolder"`
	AccountNumber *string `json:"accountNumber" form:"accountNumber"`
	RoutingCode   *string `json:"routingCode" form:"routingCode"`
	Currency      *string `json:"currency" form:"currency"`
	Primary       *bool   `json:"primary" form:"primary"`
}

func (u BankDetailsUpdate) Apply(b *BankDetails) {
	patch(&b.EmployeeID, u.EmployeeID)
	patch(&b.BankName, u.BankName)
	patch(&b.AccountHolder, u.AccountHolder)
	patch(&b.AccountNumber, u.AccountNumber)
	patch(&b.RoutingCode, u.RoutingCode)
	patch(&b.Currency, u.Currency)
	patch(&b.Primary, u.Primary)
}

// Exit statuses.
const (
	ExitInitiated  = "INITIATED"
	ExitInProgress = "IN_PROGRESS"
	ExitCompleted  = "COMPLETED"
)

// Exit tracks an employee's offboarding.
type Exit struct {
	BaseModel
	EmployeeID        uint   `gorm:"index;not null" json:"employeeId"`
	ExitType          string `gorm:"size:20" json:"exitType"`
	NoticeDate        string `gorm:"size:10" json:"noticeDate"`
	LastWorkingDay    string `gorm:"size:10" json:"lastWorkingDay"`
	Reason            string `gorm:"size:500" json:"reason"`
	Status            string `gorm:"size:20" json:"status"`
	ExitInterviewDone bool   `json:"exitInterviewDone"`
}

type ExitCreate struct {
	EmployeeID     uint   `json:"employeeId" form:"employeeId" binding:"required" label:"Employee ID"`
	ExitType       string `json:"exitType" form:"exitType" binding:"required" label:"Exit type" options:"RESIGNATION|TERMINATION|RETIREMENT|CONTRACT_END"`
	NoticeDate     string `json:"noticeDate" form:"noticeDate" label:"Notice date" input:"date"`
	LastWorkingDay string `json:"lastWorkingDay" form:"lastWorkingDay" binding:"required" label:"Last working day" input:"date"`
	Reason         string `json:"reason" form:"reason" label:"Reason" input:"textarea"`
}

func (c ExitCreate) Build() Exit {
	return Exit{
		EmployeeID:     c.EmployeeID,
		ExitType:       c.ExitType,
		NoticeDate:     c.NoticeDate,
		LastWorkingDay: c.LastWorkingDay,
		Reason:         c.Reason,
		Status:         ExitInitiated,
	}
}

type ExitUpdate struct {
	ExitType          *string `json:"exitType" form:"exitType"`
	NoticeDate        *string `json:"noticeDate" form:"noticeDate"`
	LastWorkingDay    *string `json:"lastWorkingDay" form:"lastWorkingDay"`
	Reason            *string `json:"reason" form:"reason"`
	Status            *string `json:"status" form:"status"`
	ExitInterviewDone *bool   `json:"exitInterviewDone" form:"exitInterviewDone"`
}

func (u ExitUpdate) Apply(x *Exit) {
	patch(&x.ExitType, u.ExitType)
	patch(&x.NoticeDate, u.NoticeDate)
	patch(&x.LastWorkingDay, u.LastWorkingDay)
	patch(&x.Reason, u.Reason)
	patch(&x.Status, u.Status)
	patch(&x.ExitInterviewDone, u.ExitInterviewDone)
}

// Complete closes the offboarding.
func (x *Exit) Complete() error {
	if x.Status == ExitCompleted {
		return invalidTransition("exit", "complete", x.Status)
	}
	x.Status = ExitCompleted
	return nil
}
