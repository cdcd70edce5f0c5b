package storage

import "time"

// Run is one recorded scenario execution.
type Run struct {
	ID         string    `gorm:"primaryKey"`
	Scenario   string    `gorm:"not null;index:idx_scenario"`
	Subject    string    `gorm:"not null;default:''"`
	Passed     bool      `gorm:"not null;default:false"`
	StepCount  int       `gorm:"not null;default:0"`
	DurationMS int64     `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"index:idx_created_at"`
}
