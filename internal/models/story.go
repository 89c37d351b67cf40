package models

import (
	"time"
)

// Story is a folk tale submitted by a visitor.
type Story struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Age          string    `json:"age"`
	Location     string    `json:"location"`
	StoryTitle   string    `json:"story_title"`
	StorySummary string    `json:"story_summary"`
	StoryMoral   string    `json:"story_moral"`
	CreatedAt    time.Time `json:"timestamp"`
}
