package model

import "time"

type User struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:64" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Week is a Monday..Sunday bucket. Its date range is derived from
// WeekNumber, never set independently, and the three counters are only
// ever written by the statistics recompute.
type Week struct {
	ID             int       `gorm:"primaryKey" json:"id"`
	WeekNumber     int       `gorm:"uniqueIndex:uk_week_year" json:"week_number"`
	Year           int       `gorm:"uniqueIndex:uk_week_year" json:"year"`
	DateRangeStart string    `gorm:"type:date" json:"date_range_start"`
	DateRangeEnd   string    `gorm:"type:date" json:"date_range_end"`
	ReportCount    int       `gorm:"default:0" json:"report_count"`
	LockedCount    int       `gorm:"default:0" json:"locked_count"`
	UnlockedCount  int       `gorm:"default:0" json:"unlocked_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ReviewReport struct {
	ID                int        `gorm:"primaryKey" json:"id"`
	UserID            int        `gorm:"index" json:"user_id"`
	UserName          string     `gorm:"size:64" json:"user_name"`
	DateRangeStart    string     `gorm:"type:date" json:"date_range_start"`
	DateRangeEnd      string     `gorm:"type:date" json:"date_range_end"`
	ReviewMethod      string     `gorm:"size:16;default:offline" json:"review_method"`
	LastWeekPlan      PlanItems  `gorm:"type:text" json:"last_week_plan"`
	LastWeekActions   DayActions `gorm:"type:text" json:"last_week_actions"`
	WeekPlan          PlanItems  `gorm:"type:text" json:"week_plan"`
	CoordinationItems string     `gorm:"type:text" json:"coordination_items"`
	OtherItems        string     `gorm:"type:text" json:"other_items"`
	AIReport          string     `gorm:"type:text" json:"ai_report"`
	IsLocked          bool       `gorm:"default:false" json:"is_locked"`
	WeekID            int        `gorm:"index" json:"week_id"`
	WeekNumber        int        `json:"week_number"`
	CreatedAt         time.Time  `json:"created_at"`
}

type IntegrationReport struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	WeekID        int       `gorm:"index" json:"week_id"`
	WeekNumber    int       `json:"week_number"`
	DateRange     string    `gorm:"size:32" json:"date_range"`
	UserNames     string    `gorm:"size:255" json:"user_names"`
	ReportContent string    `gorm:"type:text" json:"report_content"`
	FilePath      string    `gorm:"size:255" json:"file_path"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (User) TableName() string              { return "users" }
func (Week) TableName() string              { return "weeks" }
func (ReviewReport) TableName() string      { return "review_reports" }
func (IntegrationReport) TableName() string { return "ai_integration_reports" }
