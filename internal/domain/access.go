package domain

import "time"

// User is a console account. Authentication is handled elsewhere; the record
// only carries profile and lock state.
type User struct {
	BaseModel
	Username    string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email       string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName    string     `gorm:"size:120" json:"fullName"`
	RoleID      *uint      `gorm:"index" json:"roleId"`
	EmployeeID  *uint      `json:"employeeId"`
	Locked      bool       `json:"locked"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

type UserCreate struct {
	Username   string `json:"username" form:"username" binding:"required" label:"Username"`
	Email      string `json:"email" form:"email" binding:"required" label:"Email" input:"email"`
	FullName   string `json:"fullName" form:"fullName" label:"Full name"`
	RoleID     *uint  `json:"roleId" form:"roleId" label:"Role ID"`
	EmployeeID *uint  `json:"employeeId" form:"employeeId" label:"Employee ID"`
}

func (c UserCreate) Build() User {
	return User{
		Username:   c.Username,
		Email:      c.Email,
		FullName:   c.FullName,
		RoleID:     ref(c.RoleID),
		EmployeeID: ref(c.EmployeeID),
	}
}

type UserUpdate struct {
	Username   *string `json:"username" form:"username"`
	Email      *string `json:"email" form:"email"`
	FullName   *string `json:"fullName" form:"fullName"`
	RoleID     *uint   `json:"roleId" form:"roleId"`
	EmployeeID *uint   `json:"employeeId" form:"employeeId"`
	Locked     *bool   `json:"locked" form:"locked"`
}

func (u UserUpdate) Apply(x *User) {
	patch(&x.Username, u.Username)
	patch(&x.Email, u.Email)
	patch(&x.FullName, u.FullName)
	patchRef(&x.RoleID, u.RoleID)
	patchRef(&x.EmployeeID, u.EmployeeID)
	patch(&x.Locked, u.Locked)
}

func (x *User) Lock() error {
	if x.Locked {
		return invalidTransition("user", "lock", "LOCKED")
	}
	x.Locked = true
	return nil
}

func (x *User) Unlock() error {
	if !x.Locked {
		return invalidTransition("user", "unlock", "UNLOCKED")
	}
	x.Locked = false
	return nil
}

// Role is a named set of permission strings.
type Role struct {
	BaseModel
	Name        string   `gorm:"size:60;uniqueIndex;not null" json:"name"`
	Description string   `gorm:"size:255" json:"description"`
	Permissions []string `gorm:"serializer:json" json:"permissions"`
	System      bool     `json:"system"`
}

type RoleCreate struct {
	Name        string   `json:"name" form:"name" binding:"required" label:"Name"`
	Description string   `json:"description" form:"description" label:"Description" input:"textarea"`
	Permissions []string `json:"permissions" form:"permissions" label:"Permissions" options:"employees:read|employees:write|payroll:read|payroll:write|assets:write|reports:read|admin" input:"multi"`
}

func (c RoleCreate) Build() Role {
	return Role{
		Name:        c.Name,
		Description: c.Description,
		Permissions: append([]string(nil), c.Permissions...),
	}
}

type RoleUpdate struct {
	Name        *string   `json:"name" form:"name"`
	Description *string   `json:"description" form:"description"`
	Permissions *[]string `json:"permissions" form:"permissions"`
}

func (u RoleUpdate) Apply(r *Role) {
	patch(&r.Name, u.Name)
	patch(&r.Description, u.Description)
	patch(&r.Permissions, u.Permissions)
}

// AuditLog is an append-only record of a mutation.
type AuditLog struct {
	BaseModel
	EventID    string `gorm:"size:36;uniqueIndex" json:"eventId"`
	Actor      string `gorm:"size:120" json:"actor"`
	Action     string `gorm:"size:40;index" json:"action"`
	Resource   string `gorm:"size:60;index" json:"resource"`
	ResourceID uint   `json:"resourceId"`
	RequestID  string `gorm:"size:64" json:"requestId"`
	Details    string `gorm:"size:1000" json:"details"`
}

type AuditLogCreate struct {
	EventID    string `json:"eventId" form:"eventId" label:"Event ID"`
	Actor      string `json:"actor" form:"actor" label:"Actor"`
	Action     string `json:"action" form:"action" binding:"required" label:"Action"`
	Resource   string `json:"resource" form:"resource" binding:"required" label:"Resource"`
	ResourceID uint   `json:"resourceId" form:"resourceId" label:"Resource ID"`
	RequestID  string `json:"requestId" form:"requestId" label:"Request ID"`
	Details    string `json:"details" form:"details" label:"Details" input:"textarea"`
}

func (c AuditLogCreate) Build() AuditLog {
	return AuditLog{
		EventID:    c.EventID,
		Actor:      c.Actor,
		Action:     c.Action,
		Resource:   c.Resource,
		ResourceID: c.ResourceID,
		RequestID:  c.RequestID,
		Details:    c.Details,
	}
}

// AuditLogUpdate only allows annotating an entry.
type AuditLogUpdate struct {
	Details *string `json:"details" form:"details"`
}

func (u AuditLogUpdate) Apply(a *AuditLog) {
	patch(&a.Details, u.Details)
}

// Notification is a message addressed to a console user.
type Notification struct {
	BaseModel
	UserID  uint       `gorm:"index;not null" json:"userId"`
	Title   string     `gorm:"size:150;not null" json:"title"`
	Message string     `gorm:"size:1000" json:"message"`
	Type    string     `gorm:"size:20" json:"type"`
	Read    bool       `json:"read"`
	ReadAt  *time.Time `json:"readAt"`
}

type NotificationCreate struct {
	UserID  uint   `json:"userId" form:"userId" binding:"required" label:"User ID"`
	Title   string `json:"title" form:"title" binding:"required" label:"Title"`
	Message string `json:"message" form:"message" label:"Message" input:"textarea"`
	Type    string `json:"type" form:"type" label:"Type" options:"INFO|WARNING|ACTION"`
}

func (c NotificationCreate) Build() Notification {
	kind := c.Type
	if kind == "" {
		kind = "INFO"
	}
	return Notification{UserID: c.UserID, Title: c.Title, Message: c.Message, Type: kind}
}

type NotificationUpdate struct {
	Title   *string `json:"title" form:"title"`
	Message *string `json:"message" form:"message"`
	Type    *string `json:"type" form:"type"`
	Read    *bool   `json:"read" form:"read"`
}

func (u NotificationUpdate) Apply(n *Notification) {
	patch(&n.Title, u.Title)
	patch(&n.Message, u.Message)
	patch(&n.Type, u.Type)
	if u.Read != nil && *u.Read != n.Read {
		if *u.Read {
			_ = n.MarkRead()
		} else {
			n.Read, n.ReadAt = false, nil
		}
	}
}

// MarkRead is idempotent.
func (n *Notification) MarkRead() error {
	if n.Read {
		return nil
	}
	now := time.Now().UTC()
	n.Read = true
	n.ReadAt = &now
	return nil
}
