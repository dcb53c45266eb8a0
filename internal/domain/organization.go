package domain

import "github.com/shopspring/decimal"

// Organization is a legal entity employing staff.
type Organization struct {
	BaseModel
	Name     string `gorm:"size:150;not null" json:"name"`
	Code     string `gorm:"size:30;uniqueIndex;not null" json:"code"`
	Industry string `gorm:"size:80" json:"industry"`
	Country  string `gorm:"size:2" json:"country"`
	Website  string `gorm:"size:255" json:"website"`
	Active   bool   `json:"active"`
}

type OrganizationCreate struct {
	Name     string `json:"name" form:"name" binding:"required" label:"Name"`
	Code     string `json:"code" form:"code" binding:"required" label:"Code"`
	Industry string `json:"industry" form:"industry" label:"Industry"`
	Country  string `json:"country" form:"country" label:"Country (ISO)"`
	Website  string `json:"website" form:"website" label:"Website"`
	Active   bool   `json:"active" form:"active" label:"Active"`
}

func (c OrganizationCreate) Build() Organization {
	return Organization{
		Name:     c.Name,
		Code:     c.Code,
		Industry: c.Industry,
		Country:  c.Country,
		Website:  c.Website,
		Active:   c.Active,
	}
}

type OrganizationUpdate struct {
	Name     *string `json:"name" form:"name"`
	Code     *string `json:"code" form:"code"`
	Industry *string `json:"industry" form:"industry"`
	Country  *string `json:"country" form:"country"`
	Website  *string `json:"website" form:"website"`
	Active   *bool   `json:"active" form:"active"`
}

func (u OrganizationUpdate) Apply(o *Organization) {
	patch(&o.Name, u.Name)
	patch(&o.Code, u.Code)
	patch(&o.Industry, u.Industry)
	patch(&o.Country, u.Country)
	patch(&o.Website, u.Website)
	patch(&o.Active, u.Active)
}

// Department groups employees inside an organization. Departments may nest.
type Department struct {
	BaseModel
	OrganizationID uint            `gorm:"index" json:"organizationId"`
	ParentID       *uint           `json:"parentId"`
	ManagerID      *uint           `json:"managerId"`
	Name           string          `gorm:"size:120;not null" json:"name"`
	Code           string          `gorm:"size:30;not null" json:"code"`
	Description    string          `gorm:"size:500" json:"description"`
	Budget         decimal.Decimal `gorm:"type:decimal(14,2)" json:"budget"`
	Status         string          `gorm:"size:20" json:"status"`
}

type DepartmentCreate struct {
	OrganizationID uint            `json:"organizationId" form:"organizationId" binding:"required" label:"Organization ID"`
	ParentID       *uint           `json:"parentId" form:"parentId" label:"Parent department ID"`
	ManagerID      *uint           `json:"managerId" form:"managerId" label:"Manager (employee ID)"`
	Name           string          `json:"name" form:"name" binding:"required" label:"Name"`
	Code           string          `json:"code" form:"code" binding:"required" label:"Code"`
	Description    string          `json:"description" form:"description" label:"Description" input:"textarea"`
	Budget         decimal.Decimal `json:"budget" form:"budget,default=0" label:"Budget"`
	Status         string          `json:"status" form:"status" label:"Status" options:"ACTIVE|INACTIVE"`
}

func (c DepartmentCreate) Build() Department {
	status := c.Status
	if status == "" {
		status = "ACTIVE"
	}
	return Department{
		OrganizationID: c.OrganizationID,
		ParentID:       ref(c.ParentID),
		ManagerID:      ref(c.ManagerID),
		Name:           c.Name,
		Code:           c.Code,
		Description:    c.Description,
		Budget:         c.Budget,
		Status:         status,
	}
}

type DepartmentUpdate struct {
	OrganizationID *uint            `json:"organizationId" form:"organizationId"`
	ParentID       *uint            `json:"parentId" form:"parentId"`
	ManagerID      *uint            `json:"managerId" form:"managerId"`
	Name           *string          `json:"name" form:"name"`
	Code           *string          `json:"code" form:"code"`
	Description    *string          `json:"description" form:"description"`
	Budget         *decimal.Decimal `json:"budget" form:"budget,default=0"`
	Status         *string          `json:"status" form:"status"`
}

func (u DepartmentUpdate) Apply(d *Department) {
	patch(&d.OrganizationID, u.OrganizationID)
	patchRef(&d.ParentID, u.ParentID)
	patchRef(&d.ManagerID, u.ManagerID)
	patch(&d.Name, u.Name)
	patch(&d.Code, u.Code)
	patch(&d.Description, u.Description)
	patch(&d.Budget, u.Budget)
	patch(&d.Status, u.Status)
}

// Location is an office or site.
type Location struct {
	BaseModel
	OrganizationID uint   `gorm:"index" json:"organizationId"`
	Name           string `gorm:"size:120;not null" json:"name"`
	Code           string `gorm:"size:30" json:"code"`
	Type           string `gorm:"size:20" json:"type"`
	Address        string `gorm:"size:255" json:"address"`
	City           string `gorm:"size:80" json:"city"`
	Country        string `gorm:"size:2" json:"country"`
	Timezone       string `gorm:"size:64" json:"timezone"`
}

type LocationCreate struct {
	OrganizationID uint   `json:"organizationId" form:"organizationId" binding:"required" label:"Organization ID"`
	Name           string `json:"name" form:"name" binding:"required" label:"Name"`
	Code           string `json:"code" form:"code" label:"Code"`
	Type           string `json:"type" form:"type" label:"Type" options:"HEADQUARTERS|BRANCH|REMOTE|WAREHOUSE"`
	Address        string `json:"address" form:"address" label:"Address"`
	City           string `json:"city" form:"city" label:"City"`
	Country        string `json:"country" form:"country" label:"Country (ISO)"`
	Timezone       string `json:"timezone" form:"timezone" label:"Timezone"`
}

func (c LocationCreate) Build() Location {
	return Location{
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		Code:           c.Code,
		Type:           c.Type,
		Address:        c.Address,
		City:           c.City,
		Country:        c.Country,
		Timezone:       c.Timezone,
	}
}

type LocationUpdate struct {
	OrganizationID *uint   `json:"organizationId" form:"organizationId"`
	Name           *string `json:"name" form:"name"`
	Code           *string `json:"code" form:"code"`
	Type           *string `json:"type" form:"type"`
	Address        *string `json:"address" form:"address"`
	City           *string `json:"city" form:"city"`
	Country        *string `json:"country" form:"country"`
	Timezone       *string `json:"timezone" form:"timezone"`
}

func (u LocationUpdate) Apply(l *Location) {
	patch(&l.OrganizationID, u.OrganizationID)
	patch(&l.Name, u.Name)
	patch(&l.Code, u.Code)
	patch(&l.Type, u.Type)
	patch(&l.Address, u.Address)
	patch(&l.City, u.City)
	patch(&l.Country, u.Country)
	patch(&l.Timezone, u.Timezone)
}
