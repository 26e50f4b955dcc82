package model

import "time"

// Op is the kind of mutation a Change reports.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpRemoved Op = "removed"
)

// Change describes a record mutation that has already been persisted.
type Change struct {
	Kind Kind      `json:"kind"`
	Op   Op        `json:"op"`
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
}
