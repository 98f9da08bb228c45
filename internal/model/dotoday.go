package model

import "time"

// DayFormat is the canonical calendar-day key layout.
const DayFormat = "2006-01-02"

// DayKey formats a timestamp as its calendar-day key.
func DayKey(t time.Time) string {
	return t.Format(DayFormat)
}

// DoTodayOff records that a task is hidden from the active list for one
// calendar day. TaskKey is the task's original_task_id when set (so a
// recurring instance toggled today does not affect other days), otherwise
// the task id. The Task row itself is never touched.
type DoTodayOff struct {
	ID        uint   `gorm:"primaryKey"`
	TaskKey   uint   `gorm:"index:idx_dotoday_day_key,unique"`
	Day       string `gorm:"index:idx_dotoday_day_key,unique"`
	CreatedAt time.Time
}
