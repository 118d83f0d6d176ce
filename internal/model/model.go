package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PlanItem is one row of a last-week or this-week plan table. Completion
// is only filled for last-week rows.
type PlanItem struct {
	Task           string `json:"task"`
	ExpectedResult string `json:"expectedResult"`
	Completion     string `json:"completion,omitempty"`
}

// DayAction records morning/evening work for one day of the review week.
type DayAction struct {
	Day           string `json:"day"`
	MorningAction string `json:"morningAction"`
	MorningResult string `json:"morningResult"`
	EveningAction string `json:"eveningAction"`
	EveningResult string `json:"eveningResult"`
}

type PlanItems []PlanItem

type DayActions []DayAction

func (p PlanItems) Value() (driver.Value, error)  { return jsonValue(p) }
func (p *PlanItems) Scan(src any) error           { return jsonScan(src, p) }
func (d DayActions) Value() (driver.Value, error) { return jsonValue(d) }
func (d *DayActions) Scan(src any) error          { return jsonScan(src, d) }

func jsonValue(v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func jsonScan(src, dst any) error {
	switch s := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(s) == 0 {
			return nil
		}
		return json.Unmarshal(s, dst)
	case string:
		if s == "" {
			return nil
		}
		return json.Unmarshal([]byte(s), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

// SaveReportRequest is the body of POST /api/reports/save. Field names
// follow the form the UI submits.
type SaveReportRequest struct {
	DateRange         []string    `json:"dateRange"`
	SelectedUser      int         `json:"selectedUser"`
	SelectedUserName  string      `json:"selectedUserName"`
	ReviewMethod      string      `json:"reviewMethod"`
	LastWeekPlan      []PlanItem  `json:"lastWeekPlan"`
	LastWeekActions   []DayAction `json:"lastWeekActions"`
	WeekPlan          []PlanItem  `json:"weekPlan"`
	CoordinationItems string      `json:"coordinationItems"`
	OtherItems        string      `json:"otherItems"`
	AIReport          string      `json:"aiReport"`
}

// GenerateRequest is the body of POST /api/reports/generate-stream: the
// same form fields, drafted before the report is saved.
type GenerateRequest struct {
	UserName          string      `json:"userName"`
	DateRange         []string    `json:"dateRange"`
	ReviewMethod      string      `json:"reviewMethod"`
	LastWeekPlan      []PlanItem  `json:"lastWeekPlan"`
	LastWeekActions   []DayAction `json:"lastWeekActions"`
	WeekPlan          []PlanItem  `json:"weekPlan"`
	CoordinationItems string      `json:"coordinationItems"`
	OtherItems        string      `json:"otherItems"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
