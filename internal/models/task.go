package models

import (
	"strconv"

	"github.com/balkashynov/todoweb/internal/export"
)

// Task represents a todo item
type Task struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Action   string `gorm:"not null;check:action <> ''" json:"action"`
	Date     string `gorm:"not null" json:"date"` // free-form, never parsed
	Done     bool   `gorm:"not null;default:false" json:"done"`
	Priority bool   `gorm:"not null" json:"priority"`
}

// Fields lists the task's exportable columns
func (t Task) Fields() []export.Field {
	return []export.Field{
		{Name: "action", Value: t.Action},
		{Name: "date", Value: t.Date},
		{Name: "done", Value: formatBool(t.Done)},
		{Name: "id", Value: strconv.FormatUint(uint64(t.ID), 10)},
		{Name: "priority", Value: formatBool(t.Priority)},
	}
}

// formatBool renders booleans as True/False in exported files
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Records adapts a task slice for export
func Records(tasks []Task) []export.Record {
	records := make([]export.Record, len(tasks))
	for i, t := range tasks {
		records[i] = t
	}
	return records
}
