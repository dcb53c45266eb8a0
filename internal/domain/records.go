package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Document is metadata for a file held by an external store. StorageKey is
// the opaque object name; upload mechanics are not handled here.
type Document struct {
	BaseModel
	EmployeeID  *uint  `gorm:"index" json:"employeeId"`
	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`
	Category    string `gorm:"size:30" json:"category"`
	FileName    string `gorm:"size:255" json:"fileName"`
	MimeType    string `gorm:"size:100" json:"mimeType"`
	SizeBytes   int64  `json:"sizeBytes"`
	StorageKey  string `gorm:"size:36;uniqueIndex" json:"storageKey"`
	ExpiresOn   string `gorm:"size:10" json:"expiresOn"`
}

type DocumentCreate struct {
	EmployeeID  *uint  `json:"employeeId" form:"employeeId" label:"Employee ID"`
	Title       string `json:"title" form:"title" binding:"required" label:"Title"`
	Description string `json:"description" form:"description" label:"Description" input:"textarea"`
	Category    string `json:"category" form:"category" label:"Category" options:"CONTRACT|ID|CERTIFICATE|POLICY|OTHER"`
	FileName    string `json:"fileName" form:"fileName" binding:"required" label:"File name"`
	MimeType    string `json:"mimeType" form:"mimeType" label:"MIME type"`
	SizeBytes   int64  `json:"sizeBytes" form:"sizeBytes" label:"Size (bytes)"`
	ExpiresOn   string `json:"expiresOn" form:"expiresOn" label:"Expires on" input:"date"`
}

func (c DocumentCreate) Build() Document {
	return Document{
		EmployeeID:  ref(c.EmployeeID),
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		FileName:    c.FileName,
		MimeType:    c.MimeType,
		SizeBytes:   c.SizeBytes,
		StorageKey:  uuid.NewString(),
		ExpiresOn:   c.ExpiresOn,
	}
}

type DocumentUpdate struct {
	EmployeeID  *uint   `json:"employeeId" form:"employeeId"`
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	Category    *string `json:"category" form:"category"`
	FileName    *string `json:"fileName" form:"fileName"`
	MimeType    *string `json:"mimeType" form:"mimeType"`
	SizeBytes   *int64  `json:"sizeBytes" form:"sizeBytes"`
	ExpiresOn   *string `json:"expiresOn" form:"expiresOn"`
}

func (u DocumentUpdate) Apply(d *Document) {
	patchRef(&d.EmployeeID, u.EmployeeID)
	patch(&d.Title, u.Title)
	patch(&d.Description, u.Description)
	patch(&d.Category, u.Category)
	patch(&d.FileName, u.FileName)
	patch(&d.MimeType, u.MimeType)
	patch(&d.SizeBytes, u.SizeBytes)
	patch(&d.ExpiresOn, u.ExpiresOn)
}

// Compliance statuses.
const (
	CompliancePending      = "PENDING"
	ComplianceCompliant    = "COMPLIANT"
	ComplianceNonCompliant = "NON_COMPLIANT"
)

// Compliance tracks a regulatory requirement. Rule evaluation happens
// elsewhere; the record stores the outcome.
type Compliance struct {
	BaseModel
	Title       string `gorm:"size:150;not null" json:"title"`
	Regulation  string `gorm:"size:80" json:"regulation"`
	Description string `gorm:"size:1000" json:"description"`
	OwnerID     *uint  `json:"ownerId"`
	DueDate     string `gorm:"size:10" json:"dueDate"`
	Status      string `gorm:"size:20" json:"status"`
	VerifiedOn  string `gorm:"size:10" json:"verifiedOn"`
}

type ComplianceCreate struct {
	Title       string `json:"title" form:"title" binding:"required" label:"Title"`
	Regulation  string `json:"regulation" form:"regulation" label:"Regulation"`
	Description string `json:"description" form:"description" label:"Description" input:"textarea"`
	OwnerID     *uint  `json:"ownerId" form:"ownerId" label:"Owner (employee ID)"`
	DueDate     string `json:"dueDate" form:"dueDate" label:"Due date" input:"date"`
	Status      string `json:"status" form:"status" label:"Status" options:"PENDING|COMPLIANT|NON_COMPLIANT"`
}

func (c ComplianceCreate) Build() Compliance {
	status := c.Status
	if status == "" {
		status = CompliancePending
	}
	return Compliance{
		Title:       c.Title,
		Regulation:  c.Regulation,
		Description: c.Description,
		OwnerID:     ref(c.OwnerID),
		DueDate:     c.DueDate,
		Status:      status,
	}
}

type ComplianceUpdate struct {
	Title       *string `json:"title" form:"title"`
	Regulation  *string `json:"regulation" form:"regulation"`
	Description *string `json:"description" form:"description"`
	OwnerID     *uint   `json:"ownerId" form:"ownerId"`
	DueDate     *string `json:"dueDate" form:"dueDate"`
	Status      *string `json:"status" form:"status"`
}

func (u ComplianceUpdate) Apply(c *Compliance) {
	patch(&c.Title, u.Title)
	patch(&c.Regulation, u.Regulation)
	patch(&c.Description, u.Description)
	patchRef(&c.OwnerID, u.OwnerID)
	patch(&c.DueDate, u.DueDate)
	patch(&c.Status, u.Status)
}

func (c *Compliance) MarkCompliant() error {
	if c.Status == ComplianceCompliant {
		return invalidTransition("compliance item", "mark compliant", c.Status)
	}
	c.Status = ComplianceCompliant
	c.VerifiedOn = today()
	return nil
}

// Benefit is a perk or insurance plan offered to employees.
type Benefit struct {
	BaseModel
	Name                 string          `gorm:"size:120;not null" json:"name"`
	Type                 string          `gorm:"size:20" json:"type"`
	Provider             string          `gorm:"size:120" json:"provider"`
	Description          string          `gorm:"size:1000" json:"description"`
	EmployerContribution decimal.Decimal `gorm:"type:decimal(12,2)" json:"employerContribution"`
	EmployeeContribution decimal.Decimal `gorm:"type:decimal(12,2)" json:"employeeContribution"`
	Active               bool            `json:"active"`
}

type BenefitCreate struct {
	Name                 string          `json:"name" form:"name" binding:"required" label:"Name"`
	Type                 string          `json:"type" form:"type" label:"Type" options:"HEALTH|DENTAL|RETIREMENT|LIFE|WELLNESS|OTHER"`
	Provider             string          `json:"provider" form:"provider" label:"Provider"`
	Description          string          `json:"description" form:"description" label:"Description" input:"textarea"`
	EmployerContribution decimal.Decimal `json:"employerContribution" form:"employerContribution,default=0" label:"Employer contribution"`
	EmployeeContribution decimal.Decimal `json:"employeeContribution" form:"employeeContribution,default=0" label:"Employee contribution"`
	Active               bool            `json:"active" form:"active" label:"Active"`
}

func (c BenefitCreate) Build() Benefit {
	return Benefit{
		Name:                 c.Name,
		Type:                 c.Type,
		Provider:             c.Provider,
		Description:          c.Description,
		EmployerContribution: c.EmployerContribution,
		EmployeeContribution: c.EmployeeContribution,
		Active:               c.Active,
	}
}

type BenefitUpdate struct {
	Name                 *string          `json:"name" form:"name"`
	Type                 *string          `json:"type" form:"type"`
	Provider             *string          `json:"provider" form:"provider"`
	Description          *string          `json:"description" form:"description"`
	EmployerContribution *decimal.Decimal `json:"employerContribution" form:"employerContribution,default=0"`
	EmployeeContribution *decimal.Decimal `json:"employeeContribution" form:"employeeContribution,default=0"`
	Active               *bool            `json:"active" form:"active"`
}

func (u BenefitUpdate) Apply(b *Benefit) {
	patch(&b.Name, u.Name)
	patch(&b.Type, u.Type)
	patch(&b.Provider, u.Provider)
	patch(&b.Description, u.Description)
	patch(&b.EmployerContribution, u.EmployerContribution)
	patch(&b.EmployeeContribution, u.EmployeeContribution)
	patch(&b.Active, u.Active)
}

// Asset statuses.
const (
	AssetAvailable = "AVAILABLE"
	AssetAssigned  = "ASSIGNED"
	AssetRetired   = "RETIRED"
)

// Asset is company equipment, optionally assigned to an employee.
type Asset struct {
	BaseModel
	Tag           string          `gorm:"size:40;uniqueIndex;not null" json:"tag"`
	Name          string          `gorm:"size:120;not null" json:"name"`
	Category      string          `gorm:"size:30" json:"category"`
	SerialNumber  string          `gorm:"size:80" json:"serialNumber"`
	AssignedTo    *uint           `gorm:"index" json:"assignedTo"`
	Status        string          `gorm:"size:20;index" json:"status"`
	PurchaseDate  string          `gorm:"size:10" json:"purchaseDate"`
	PurchaseValue decimal.Decimal `gorm:"type:decimal(12,2)" json:"purchaseValue"`
}

type AssetCreate struct {
	Tag           string          `json:"tag" form:"tag" binding:"required" label:"Asset tag"`
	Name          string          `json:"name" form:"name" binding:"required" label:"Name"`
	Category      string          `json:"category" form:"category" label:"Category" options:"LAPTOP|PHONE|MONITOR|VEHICLE|FURNITURE|OTHER"`
	SerialNumber  string          `json:"serialNumber" form:"serialNumber" label:"Serial number"`
	AssignedTo    *uint           `json:"assignedTo" form:"assignedTo" label:"Assigned to (employee ID)"`
	PurchaseDate  string          `json:"purchaseDate" form:"purchaseDate" label:"Purchase date" input:"date"`
	PurchaseValue decimal.Decimal `json:"purchaseValue" form:"purchaseValue,default=0" label:"Purchase value"`
}

func (c AssetCreate) Build() Asset {
	a := Asset{
		Tag:           c.Tag,
		Name:          c.Name,
		Category:      c.Category,
		SerialNumber:  c.SerialNumber,
		AssignedTo:    ref(c.AssignedTo),
		Status:        AssetAvailable,
		PurchaseDate:  c.PurchaseDate,
		PurchaseValue: c.PurchaseValue,
	}
	if a.AssignedTo != nil {
		a.Status = AssetAssigned
	}
	return a
}

type AssetUpdate struct {
	Tag           *string          `json:"tag" form:"tag"`
	Name          *string          `json:"name" form:"name"`
	Category      *string          `json:"category" form:"category"`
	SerialNumber  *string          `json:"serialNumber" form:"serialNumber"`
	AssignedTo    *uint            `json:"assignedTo" form:"assignedTo"`
	PurchaseDate  *string          `json:"purchaseDate" form:"purchaseDate"`
	PurchaseValue *decimal.Decimal `json:"purchaseValue" form:"purchaseValue,default=0"`
}

func (u AssetUpdate) Apply(a *Asset) {
	patch(&a.Tag, u.Tag)
	patch(&a.Name, u.Name)
	patch(&a.Category, u.Category)
	patch(&a.SerialNumber, u.SerialNumber)
	patch(&a.PurchaseDate, u.PurchaseDate)
	patch(&a.PurchaseValue, u.PurchaseValue)
	if u.AssignedTo != nil && a.Status != AssetRetired {
		patchRef(&a.AssignedTo, u.AssignedTo)
		a.Status = AssetAvailable
		if a.AssignedTo != nil {
			a.Status = AssetAssigned
		}
	}
}

// Return takes an assigned asset back into stock.
func (a *Asset) Return() error {
	if a.Status != AssetAssigned {
		return invalidTransition("asset", "return", a.Status)
	}
	a.AssignedTo = nil
	a.Status = AssetAvailable
	return nil
}

func (a *Asset) Retire() error {
	if a.Status == AssetRetired {
		return invalidTransition("asset", "retire", a.Status)
	}
	a.AssignedTo = nil
	a.Status = AssetRetired
	return nil
}

// Expense claim statuses.
const (
	ExpensePending    = "PENDING"
	ExpenseApproved   = "APPROVED"
	ExpenseRejected   = "REJECTED"
	ExpenseReimbursed = "REIMBURSED"
)

// Expense is a reimbursement claim.
type Expense struct {
	BaseModel
	EmployeeID  uint            `gorm:"index;not null" json:"employeeId"`
	Category    string          `gorm:"size:30" json:"category"`
	Description string          `gorm:"size:500" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Currency    string          `gorm:"size:3" json:"currency"`
	IncurredOn  string          `gorm:"size:10" json:"incurredOn"`
	Status      string          `gorm:"size:20;index" json:"status"`
	DecidedOn   string          `gorm:"size:10" json:"decidedOn"`
}

type ExpenseCreate struct {
	EmployeeID  uint            `json:"employeeId" form:"employeeId" binding:"required" label:"Employee ID"`
	Category    string          `json:"category" form:"category" label:"Category" options:"TRAVEL|MEALS|EQUIPMENT|TRAINING|OTHER"`
	Description string          `json:"description" form:"description" label:"Description" input:"textarea"`
	Amount      decimal.Decimal `json:"amount" form:"amount,default=0" label:"Amount"`
	Currency    string          `json:"currency" form:"currency" label:"Currency"`
	IncurredOn  string          `json:"incurredOn" form:"incurredOn" binding:"required" label:"Incurred on" input:"date"`
}

func (c ExpenseCreate) Build() Expense {
	return Expense{
		EmployeeID:  c.EmployeeID,
		Category:    c.Category,
		Description: c.Description,
		Amount:      c.Amount,
		Currency:    c.Currency,
		IncurredOn:  c.IncurredOn,
		Status:      ExpensePending,
	}
}

type ExpenseUpdate struct {
	Category    *string          `json:"category" form:"category"`
	Description *string          `json:"description" form:"description"`
	Amount      *decimal.Decimal `json:"amount" form:"amount,default=0"`
	Currency    *string          `json:"currency" form:"currency"`
	IncurredOn  *string          `json:"incurredOn" form:"incurredOn"`
}

func (u ExpenseUpdate) Apply(e *Expense) {
	patch(&e.Category, u.Category)
	patch(&e.Description, u.Description)
	patch(&e.Amount, u.Amount)
	patch(&e.Currency, u.Currency)
	patch(&e.IncurredOn, u.IncurredOn)
}

func (e *Expense) Approve() error { return e.decide("approve", ExpenseApproved) }

func (e *Expense) Reject() error { return e.decide("reject", ExpenseRejected) }

func (e *Expense) decide(action, status string) error {
	if e.Status != ExpensePending {
		return invalidTransition("expense", action, e.Status)
	}
	e.Status = status
	e.DecidedOn = today()
	return nil
}

// Reimburse marks an approved claim as paid out.
func (e *Expense) Reimburse() error {
	if e.Status != ExpenseApproved {
		return invalidTransition("expense", "reimburse", e.Status)
	}
	e.Status = ExpenseReimbursed
	return nil
}
