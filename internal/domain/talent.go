package domain

import "github.com/shopspring/decimal"

// Performance review statuses.
const (
	ReviewDraft     = "DRAFT"
	ReviewSubmitted = "SUBMITTED"
	ReviewCompleted = "COMPLETED"
)

// Performance is a periodic review of one employee.
type Performance struct {
	BaseModel
	EmployeeID  uint   `gorm:"index;not null" json:"employeeId"`
	ReviewerID  *uint  `json:"reviewerId"`
	Period      string `gorm:"size:20" json:"period"`
	Rating      int    `json:"rating"`
	Goals       string `gorm:"size:1000" json:"goals"`
	Comments    string `gorm:"size:1000" json:"comments"`
	Status      string `gorm:"size:20" json:"status"`
	ReviewDate  string `gorm:"size:10" json:"reviewDate"`
	SubmittedOn string `gorm:"size:10" json:"submittedOn"`
}

type PerformanceCreate struct {
	EmployeeID uint   `json:"employeeId" form:"employeeId" binding:"required" label:"Employee ID"`
	ReviewerID *uint  `json:"reviewerId" form:"reviewerId" label:"Reviewer (employee ID)"`
	Period     string `json:"period" form:"period" binding:"required" label:"Period"`
	Rating     int    `json:"rating" form:"rating" label:"Rating (1-5)"`
	Goals      string `json:"goals" form:"goals" label:"Goals" input:"textarea"`
	Comments   string `json:"comments" form:"comments" label:"Comments" input:"textarea"`
	ReviewDate string `json:"reviewDate" form:"reviewDate" label:"Review date" input:"date"`
}

func (c PerformanceCreate) Build() Performance {
	return Performance{
		EmployeeID: c.EmployeeID,
		ReviewerID: ref(c.ReviewerID),
		Period:     c.Period,
		Rating:     c.Rating,
		Goals:      c.Goals,
		Comments:   c.Comments,
		Status:     ReviewDraft,
		ReviewDate: c.ReviewDate,
	}
}

type PerformanceUpdate struct {
	ReviewerID *uint   `json:"reviewerId" form:"reviewerId"`
	Period     *string `json:"period" form:"period"`
	Rating     *int    `json:"rating" form:"rating"`
	Goals      *string `json:"goals" form:"goals"`
	Comments   *string `json:"comments" form:"comments"`
	ReviewDate *string `json:"reviewDate" form:"reviewDate"`
}

func (u PerformanceUpdate) Apply(p *Performance) {
	patchRef(&p.ReviewerID, u.ReviewerID)
	patch(&p.Period, u.Period)
	patch(&p.Rating, u.Rating)
	patch(&p.Goals, u.Goals)
	patch(&p.Comments, u.Comments)
	patch(&p.ReviewDate, u.ReviewDate)
}

func (p *Performance) Submit() error {
	if p.Status != ReviewDraft {
		return invalidTransition("performance review", "submit", p.Status)
	}
	p.Status = ReviewSubmitted
	p.SubmittedOn = today()
	return nil
}

func (p *Performance) Complete() error {
	if p.Status != ReviewSubmitted {
		return invalidTransition("performance review", "complete", p.Status)
	}
	p.Status = ReviewCompleted
	return nil
}

// Skill is a competency held by an employee.
type Skill struct {
	BaseModel
	EmployeeID   uint   `gorm:"index;not null" json:"employeeId"`
	Name         string `gorm:"size:80;not null" json:"name"`
	Category     string `gorm:"size:40" json:"category"`
	Level        string `gorm:"size:20" json:"level"`
	YearsOfExp   int    `json:"yearsOfExperience"`
	Certified    bool   `json:"certified"`
	LastAssessed string `gorm:"size:10" json:"lastAssessed"`
}

type SkillCreate struct {
	EmployeeID   uint   `json:"employeeId" form:"employeeId" binding:"required" label:"Employee ID"`
	Name         string `json:"name" form:"name" binding:"required" label:"Skill"`
	Category     string `json:"category" form:"category" label:"Category" options:"TECHNICAL|SOFT|LANGUAGE|MANAGEMENT"`
	Level        string `json:"level" form:"level" label:"Level" options:"BEGINNER|INTERMEDIATE|ADVANCED|EXPERT"`
	YearsOfExp   int    `json:"yearsOfExperience" form:"yearsOfExperience" label:"Years of experience"`
	Certified    bool   `json:"certified" form:"certified" label:"Certified"`
	LastAssessed string `json:"lastAssessed" form:"lastAssessed" label:"Last assessed" input:"date"`
}

func (c SkillCreate) Build() Skill {
	return Skill{
		EmployeeID:   c.EmployeeID,
		Name:         c.Name,
		Category:     c.Category,
		Level:        c.Level,
		YearsOfExp:   c.YearsOfExp,
		Certified:    c.Certified,
		LastAssessed: c.LastAssessed,
	}
}

type SkillUpdate struct {
	Name         *string `json:"name" form:"name"`
	Category     *string `json:"category" form:"category"`
	Level        *string `json:"level" form:"level"`
	YearsOfExp   *int    `json:"yearsOfExperience" form:"yearsOfExperience"`
	Certified    *bool   `json:"certified" form:"certified"`
	LastAssessed *string `json:"lastAssessed" form:"lastAssessed"`
}

func (u SkillUpdate) Apply(s *Skill) {
	patch(&s.Name, u.Name)
	patch(&s.Category, u.Category)
	patch(&s.Level, u.Level)
	patch(&s.YearsOfExp, u.YearsOfExp)
	patch(&s.Certified, u.Certified)
	patch(&s.LastAssessed, u.LastAssessed)
}

// Training statuses.
const (
	TrainingPlanned   = "PLANNED"
	TrainingOngoing   = "ONGOING"
	TrainingCompleted = "COMPLETED"
	TrainingCancelled = "CANCELLED"
)

// Training is a scheduled course.
type Training struct {
	BaseModel
	Title       string          `gorm:"size:150;not null" json:"title"`
	Description string          `gorm:"size:1000" json:"description"`
	Provider    string          `gorm:"size:120" json:"provider"`
	Mode        string          `gorm:"size:20" json:"mode"`
	StartDate   string          `gorm:"size:10" json:"startDate"`
	EndDate     string          `gorm:"size:10" json:"endDate"`
	Capacity    int             `json:"capacity"`
	Cost        decimal.Decimal `gorm:"type:decimal(12,2)" json:"cost"`
	Status      string          `gorm:"size:20" json:"status"`
}

type TrainingCreate struct {
	Title       string          `json:"title" form:"title" binding:"required" label:"Title"`
	Description string          `json:"description" form:"description" label:"Description" input:"textarea"`
	Provider    string          `json:"provider" form:"provider" label:"Provider"`
	Mode        string          `json:"mode" form:"mode" label:"Mode" options:"CLASSROOM|ONLINE|HYBRID"`
	StartDate   string          `json:"startDate" form:"startDate" binding:"required" label:"Start date" input:"date"`
	EndDate     string          `json:"endDate" form:"endDate" label:"End date" input:"date"`
	Capacity    int             `json:"capacity" form:"capacity" label:"Capacity"`
	Cost        decimal.Decimal `json:"cost" form:"cost,default=0" label:"Cost"`
}

func (c TrainingCreate) Build() Training {
	return Training{
		Title:       c.Title,
		Description: c.Description,
		Provider:    c.Provider,
		Mode:        c.Mode,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		Capacity:    c.Capacity,
		Cost:        c.Cost,
		Status:      TrainingPlanned,
	}
}

type TrainingUpdate struct {
	Title       *string          `json:"title" form:"title"`
	Description *string          `json:"description" form:"description"`
	Provider    *string          `json:"provider" form:"provider"`
	Mode        *string          `json:"mode" form:"mode"`
	StartDate   *string          `json:"startDate" form:"startDate"`
	EndDate     *string          `json:"endDate" form:"endDate"`
	Capacity    *int             `json:"capacity" form:"capacity"`
	Cost        *decimal.Decimal `json:"cost" form:"cost,default=0"`
	Status      *string          `json:"status" form:"status"`
}

func (u TrainingUpdate) Apply(t *Training) {
	patch(&t.Title, u.Title)
	patch(&t.Description, u.Description)
	patch(&t.Provider, u.Provider)
	patch(&t.Mode, u.Mode)
	patch(&t.StartDate, u.StartDate)
	patch(&t.EndDate, u.EndDate)
	patch(&t.Capacity, u.Capacity)
	patch(&t.Cost, u.Cost)
	patch(&t.Status, u.Status)
}

func (t *Training) Cancel() error {
	if t.Status == TrainingCompleted || t.Status == TrainingCancelled {
		return invalidTransition("training", "cancel", t.Status)
	}
	t.Status = TrainingCancelled
	return nil
}
