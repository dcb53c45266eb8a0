package hr

import (
	"strings"

	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/resource"
	"github.com/simp-lee/hrdesk/internal/table"
)

func userDef() *resource.Definition[domain.User] {
	return &resource.Definition[domain.User]{
		Name:   "user",
		Path:   "users",
		Title:  "Users",
		Equal:  []string{"roleId", "employeeId", "locked"},
		Search: []string{"username", "email", "fullName"},
		Actions: map[string]resource.Action[domain.User]{
			"lock":   (*domain.User).Lock,
			"unlock": (*domain.User).Unlock,
		},
	}
}

var userColumns = []table.Column[domain.User]{
	{Key: "username", Header: "Username", Sortable: true},
	{Key: "fullName", Header: "Name", Sortable: true},
	{Key: "email", Header: "Email", Sortable: true},
	{Key: "roleId", Header: "Role", Filterable: true,
		Render: func(u domain.User) string { return ref(u.RoleID) }},
	{Key: "locked", Header: "Locked", Filterable: true, Options: []string{"true", "false"},
		Render: func(u domain.User) string { return yesNo(u.Locked) }},
}

func userSeed() []domain.User {
	return []domain.User{
		{BaseModel: domain.BaseModel{ID: 1}, Username: "admin", Email: "admin@northwind.example.com", FullName: "System Administrator", RoleID: idPtr(1)},
		{BaseModel: domain.BaseModel{ID: 2}, Username: "mjackson", Email: "mary.jackson@northwind.example.com", FullName: "Mary Jackson", RoleID: idPtr(2), EmployeeID: idPtr(5)},
		{BaseModel: domain.BaseModel{ID: 3}, Username: "kjohnson", Email: "katherine.johnson@northwind.example.com", FullName: "Katherine Johnson", RoleID: idPtr(3), EmployeeID: idPtr(3)},
		{BaseModel: domain.BaseModel{ID: 4}, Username: "ltorvalds", Email: "linus.torvalds@northwind.example.com", FullName: "Linus Torvalds", RoleID: idPtr(4), EmployeeID: idPtr(6), Locked: true},
	}
}

func roleDef() *resource.Definition[domain.Role] {
	return &resource.Definition[domain.Role]{
		Name:   "role",
		Path:   "roles",
		Title:  "Roles",
		Equal:  []string{"system"},
		Search: []string{"name", "description"},
	}
}

var roleColumns = []table.Column[domain.Role]{
	{Key: "name", Header: "Name", Sortable: true},
	{Key: "description", Header: "Description"},
	{Key: "permissions", Header: "Permissions",
		Render: func(r domain.Role) string { return strings.Join(r.Permissions, ", ") }},
	{Key: "system", Header: "Built-in",
		Render: func(r domain.Role) string { return yesNo(r.System) }},
}

func roleSeed() []domain.Role {
	return []domain.Role{
		{BaseModel: domain.BaseModel{ID: 1}, Name: "Administrator", Description: "Full access", Permissions: []string{"admin"}, System: true},
		{BaseModel: domain.BaseModel{ID: 2}, Name: "HR Manager", Description: "Manages employee records", Permissions: []string{"employees:read", "employees:write", "reports:read"}, System: true},
		{BaseModel: domain.BaseModel{ID: 3}, Name: "Payroll", Description: "Payroll and expense processing", Permissions: []string{"employees:read", "payroll:read", "payroll:write"}},
		{BaseModel: domain.BaseModel{ID: 4}, Name: "Employee", Description: "Self service", Permissions: []string{"employees:read"}},
	}
}

// auditLogName is the audit log's resource name; its own mutations are not audited.
const auditLogName = "audit log"

func auditLogDef() *resource.Definition[domain.AuditLog] {
	return &resource.Definition[domain.AuditLog]{
		Name:   auditLogName,
		Path:   "audit-logs",
		Title:  "Audit Logs",
		Equal:  []string{"action", "resource", "resourceId", "actor", "requestId"},
		Search: []string{"details", "resource"},
	}
}

var auditLogColumns = []table.Column[domain.AuditLog]{
	{Key: "createdAt", Header: "When", Sortable: true,
		Render: func(a domain.AuditLog) string { return a.CreatedAt.Format("2006-01-02 15:04:05") }},
	{Key: "actor", Header: "Actor", Filterable: true},
	{Key: "action", Header: "Action", Sortable: true, Filterable: true},
	{Key: "resource", Header: "Resource", Sortable: true, Filterable: true},
	{Key: "resourceId", Header: "Record"},
	{Key: "details", Header: "Details"},
}

func auditLogSeed() []domain.AuditLog {
	return []domain.AuditLog{
		{EventID: "0b6f3f6e-3f0e-4c43-9d1c-6f1f2a9e7a01", Actor: "import", Action: "create", Resource: "employee", ResourceID: 9, Details: "create employee #9 via import"},
		{EventID: "7c2a9d54-88b4-4a61-b0f3-2d5e8c1a4b02", Actor: "console", Action: "lock", Resource: "user", ResourceID: 4, Details: "lock user #4 via console"},
	}
}

func notificationDef() *resource.Definition[domain.Notification] {
	return &resource.Definition[domain.Notification]{
		Name:   "notification",
		Path:   "notifications",
		Title:  "Notifications",
		Equal:  []string{"userId", "type", "read"},
		Search: []string{"title", "message"},
		Actions: map[string]resource.Action[domain.Notification]{
			"read": (*domain.Notification).MarkRead,
		},
	}
}

var notificationColumns = []table.Column[domain.Notification]{
	{Key: "userId", Header: "User", Filterable: true},
	{Key: "title", Header: "Title", Sortable: true},
	{Key: "type", Header: "Type", Filterable: true, Options: []string{"INFO", "WARNING", "ACTION"}},
	{Key: "read", Header: "Read", Filterable: true, Options: []string{"true", "false"},
		Render: func(n domain.Notification) string { return yesNo(n.Read) }},
	{Key: "createdAt", Header: "Sent", Sortable: true,
		Render: func(n domain.Notification) string { return n.CreatedAt.Format("2006-01-02") }},
}

func notificationSeed() []domain.Notification {
	return []domain.Notification{
		{UserID: 2, Title: "Exit interview due", Message: "Schedule the exit interview for Grace Hopper.", Type: "ACTION"},
		{UserID: 2, Title: "Compliance review", Message: "The annual harassment training review is pending.", Type: "WARNING"},
		{UserID: 3, Title: "Expenses awaiting approval", Message: "Two expense claims need a decision.", Type: "ACTION"},
		{UserID: 1, Title: "Welcome", Message: "The HR console is ready.", Type: "INFO", Read: true},
	}
}
