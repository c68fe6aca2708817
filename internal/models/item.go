package models

import "time"

type ItemType string

const (
	ItemTypeTask       ItemType = "TASK"
	ItemTypeAssignment ItemType = "ASSIGNMENT"
	ItemTypeEvent      ItemType = "EVENT"
	ItemTypeMeeting    ItemType = "MEETING"
	ItemTypeDeadline   ItemType = "DEADLINE"
)

type Priority string

const (
	PriorityRoutine   Priority = "ROUTINE"
	PriorityImportant Priority = "IMPORTANT"
	PriorityCritical  Priority = "CRITICAL"
)

// Rank orders priorities for sorting; unknown values rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityImportant:
		return 2
	case PriorityRoutine:
		return 1
	default:
		return 0
	}
}

type Recurrence string

const (
	RecurrenceNone    Recurrence = "NONE"
	RecurrenceDaily   Recurrence = "DAILY"
	RecurrenceWeekly  Recurrence = "WEEKLY"
	RecurrenceMonthly Recurrence = "MONTHLY"
)

// Item is a schedulable unit owned by exactly one user.
type Item struct {
	ID                string     `json:"id"`
	UserID            string     `json:"userId"`
	Title             string     `json:"title"`
	Type              ItemType   `json:"type"`
	Priority          Priority   `json:"priority"`
	Date              time.Time  `json:"date"`
	Time              *time.Time `json:"time"`
	Recurrence        Recurrence `json:"recurrence"`
	RecurrenceEndDate *time.Time `json:"recurrenceEndDate"`
	Notes             *string    `json:"notes"`
	AttendeeName      *string    `json:"attendeeName"`
	CompletedAt       *time.Time `json:"completedAt"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// OwnedBy reports whether userID owns the item.
func (i *Item) OwnedBy(userID string) bool {
	return i.UserID == userID
}
