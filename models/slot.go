package models

// SlotType is the class offering type as authored in the schedule documents.
type SlotType string

const (
	SlotTypeHotYoga    SlotType = "HOT_YOGA"
	SlotTypeHotPilates SlotType = "HOT_PILATES"
	SlotTypeHatha      SlotType = "HATHA"
	SlotTypeMat        SlotType = "MAT"
	SlotTypeReformer   SlotType = "REFORMER"
)

// Slot is a single class offering on a given weekday. Slots are server-authored
// configuration, read-only to this service; times are studio-local "HH:mm".
type Slot struct {
	ID        string   `firestore:"-" json:"id"`
	Name      string   `firestore:"name" json:"name"`
	StartTime string   `firestore:"startTime" json:"startTime"`
	EndTime   string   `firestore:"endTime" json:"endTime"`
	Type      SlotType `firestore:"type" json:"type"`
	Capacity  int      `firestore:"capacity" json:"capacity"`
	Active    bool     `firestore:"active" json:"active"`
	TimeLabel string   `firestore:"timeLabel,omitempty" json:"timeLabel,omitempty"`
}

// DaySchedule is the raw weekday schedule document. RemainingSlots is mutated
// exclusively by the server-side booking procedure; a locally computed value is
// never authoritative.
type DaySchedule struct {
	Weekday        string          `firestore:"-" json:"weekday"`
	Slots          map[string]Slot `firestore:"slots" json:"slots"`
	RemainingSlots map[string]int  `firestore:"remainingSlots" json:"remainingSlots"`
	StudioClosed   bool            `firestore:"studioClosed" json:"studioClosed"`
}

// ScheduleView is the decomposed, render-ready projection of a DaySchedule for
// one selected calendar date: slots ordered by start time, capacity map, closed flag.
type ScheduleView struct {
	Date         string         `json:"date"`
	Weekday      string         `json:"weekday"`
	Slots        []Slot         `json:"slots"`
	Remaining    map[string]int `json:"remaining"`
	StudioClosed bool           `json:"studioClosed"`
}
