// Package hr assembles the 22 HR resources: their definitions, table
// columns, seed data and the crud modules serving them.
package hr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/module/crud"
	"github.com/simp-lee/hrdesk/internal/resource"
	"github.com/simp-lee/hrdesk/internal/table"
)

// Module is a resource's route set plus its navigation entry.
type Module interface {
	RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup)
	Nav() crud.NavItem
}

// Resource is a type-erased handle on one registered resource, used by the
// CLI and by startup code that does not know the record type.
type Resource struct {
	Name   string
	Path   string
	Title  string
	Model  any
	Module Module

	kind   string
	list   func(ctx context.Context, req domain.PageRequest) (table.View, error)
	get    func(ctx context.Context, id uint) (any, error)
	delete func(ctx context.Context, id uint) error
}

// Kind reports the data source kind behind the resource.
func (r *Resource) Kind() string { return r.kind }

// List fetches one page and renders it with the resource's columns.
func (r *Resource) List(ctx context.Context, req domain.PageRequest) (table.View, error) {
	return r.list(ctx, req)
}

func (r *Resource) Get(ctx context.Context, id uint) (any, error) { return r.get(ctx, id) }

func (r *Resource) Delete(ctx context.Context, id uint) error { return r.delete(ctx, id) }

// Config is what Build needs from the composition root.
type Config struct {
	Backend resource.Backend
	Logger  *slog.Logger
	Metrics *resource.Metrics
	// Audit records every mutation as an audit log entry. Ignored for the
	// remote backend, which keeps its own audit trail.
	Audit  bool
	Layout *crud.Layout
}

// Registry holds every registered resource in navigation order.
type Registry struct {
	cfg       Config
	opts      resource.Options
	resources []*Resource
	byName    map[string]*Resource
}

// Build creates a client and module for every HR resource over cfg.Backend.
// It fails if any definition is invalid or the backend cannot be used.
func Build(cfg Config) (*Registry, error) {
	if cfg.Layout == nil {
		cfg.Layout = &crud.Layout{}
	}
	cfg.Layout.Mode = cfg.Backend.Kind()
	r := &Registry{
		cfg:    cfg,
		opts:   resource.Options{Logger: cfg.Logger, Metrics: cfg.Metrics},
		byName: make(map[string]*Resource),
	}

	// The audit log goes first so the recorder can observe every other resource.
	audit, err := newClient[domain.AuditLog, domain.AuditLogCreate, domain.AuditLogUpdate](r, auditLogDef(), auditLogSeed())
	if err != nil {
		return nil, err
	}
	if cfg.Audit && cfg.Backend.Kind() != resource.KindRemote {
		r.opts.Observers = append(r.opts.Observers, NewAuditRecorder(audit))
	}

	err = errors.Join(
		register[domain.Organization, domain.OrganizationCreate, domain.OrganizationUpdate](r, organizationDef(), organizationColumns, organizationSeed()),
		register[domain.Employee, domain.EmployeeCreate, domain.EmployeeUpdate](r, employeeDef(), employeeColumns, employeeSeed()),
		register[domain.Department, domain.DepartmentCreate, domain.DepartmentUpdate](r, departmentDef(), departmentColumns, departmentSeed()),
		register[domain.Location, domain.LocationCreate, domain.LocationUpdate](r, locationDef(), locationColumns, locationSeed()),
		register[domain.User, domain.UserCreate, domain.UserUpdate](r, userDef(), userColumns, userSeed()),
		register[domain.Role, domain.RoleCreate, domain.RoleUpdate](r, roleDef(), roleColumns, roleSeed()),
		register[domain.Attendance, domain.AttendanceCreate, domain.AttendanceUpdate](r, attendanceDef(), attendanceColumns, attendanceSeed()),
		register[domain.Shift, domain.ShiftCreate, domain.ShiftUpdate](r, shiftDef(), shiftColumns, shiftSeed()),
		register[domain.Holiday, domain.HolidayCreate, domain.HolidayUpdate](r, holidayDef(), holidayColumns, holidaySeed()),
		register[domain.Document, domain.DocumentCreate, domain.DocumentUpdate](r, documentDef(), documentColumns, documentSeed()),
		register[domain.Compliance, domain.ComplianceCreate, domain.ComplianceUpdate](r, complianceDef(), complianceColumns, complianceSeed()),
		register[domain.Performance, domain.PerformanceCreate, domain.PerformanceUpdate](r, performanceDef(), performanceColumns, performanceSeed()),
		register[domain.Skill, domain.SkillCreate, domain.SkillUpdate](r, skillDef(), skillColumns, skillSeed()),
		register[domain.Training, domain.TrainingCreate, domain.TrainingUpdate](r, trainingDef(), trainingColumns, trainingSeed()),
		register[domain.Benefit, domain.BenefitCreate, domain.BenefitUpdate](r, benefitDef(), benefitColumns, benefitSeed()),
		register[domain.Asset, domain.AssetCreate, domain.AssetUpdate](r, assetDef(), assetColumns, assetSeed()),
		register[domain.Expense, domain.ExpenseCreate, domain.ExpenseUpdate](r, expenseDef(), expenseColumns, expenseSeed()),
		register[domain.Exit, domain.ExitCreate, domain.ExitUpdate](r, exitDef(), exitColumns, exitSeed()),
		register[domain.EmploymentHistory, domain.EmploymentHistoryCreate, domain.EmploymentHistoryUpdate](r, employmentHistoryDef(), employmentHistoryColumns, employmentHistorySeed()),
		register[domain.BankDetails, domain.BankDetailsCreate, domain.BankDetailsUpdate](r, bankDetailsDef(), bankDetailsColumns, bankDetailsSeed()),
		register[domain.Notification, domain.NotificationCreate, domain.NotificationUpdate](r, notificationDef(), notificationColumns, notificationSeed()),
	)
	if err != nil {
		return nil, err
	}
	add(r, audit, auditLogColumns)
	return r, nil
}

// Resources returns every resource in navigation order.
func (r *Registry) Resources() []*Resource { return slices.Clone(r.resources) }

// Lookup finds a resource by name or path.
func (r *Registry) Lookup(name string) (*Resource, bool) {
	res, ok := r.byName[name]
	return res, ok
}

// Modules returns the route modules of every resource.
func (r *Registry) Modules() []Module {
	out := make([]Module, len(r.resources))
	for i, res := range r.resources {
		out[i] = res.Module
	}
	return out
}

// Models returns one zero record per resource, for schema migration.
func (r *Registry) Models() []any {
	out := make([]any, len(r.resources))
	for i, res := range r.resources {
		out[i] = res.Model
	}
	return out
}

// Layout returns the shared page layout with the navigation filled in.
func (r *Registry) Layout() *crud.Layout { return r.cfg.Layout }

func newClient[T any, C resource.Creator[T], U resource.Patcher[T]](r *Registry, def *resource.Definition[T], seed []T) (*resource.Client[T, C, U], error) {
	src, err := resource.Select[T, C, U](r.cfg.Backend, def, seed)
	if err != nil {
		return nil, fmt.Errorf("hr: %s: %w", def.Name, err)
	}
	return resource.NewClient[T, C, U](def, src, r.opts), nil
}

func register[T any, C resource.Creator[T], U resource.Patcher[T]](r *Registry, def *resource.Definition[T], columns []table.Column[T], seed []T) error {
	client, err := newClient[T, C, U](r, def, seed)
	if err != nil {
		return err
	}
	add(r, client, columns)
	return nil
}

func add[T any, C resource.Creator[T], U resource.Patcher[T]](r *Registry, client *resource.Client[T, C, U], columns []table.Column[T]) {
	def := client.Definition()
	mod := crud.NewModule(client, columns, r.cfg.Layout)
	r.cfg.Layout.Nav = append(r.cfg.Layout.Nav, mod.Nav())

	res := &Resource{
		Name:   def.Name,
		Path:   def.Path,
		Title:  def.Title,
		Model:  new(T),
		Module: mod,
		kind:   client.Kind(),
		list: func(ctx context.Context, req domain.PageRequest) (table.View, error) {
			page, err := client.List(ctx, req)
			if err != nil {
				return table.View{}, err
			}
			return table.Render(page.Content, columns, table.State{}, table.PaginationOf(page)), nil
		},
		get: func(ctx context.Context, id uint) (any, error) {
			return client.Get(ctx, id)
		},
		delete: client.Delete,
	}
	r.resources = append(r.resources, res)
	r.byName[def.Name] = res
	r.byName[def.Path] = res
}
