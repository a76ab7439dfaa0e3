package database

import (
	"errors"
	"fmt"
)

var (
	// ErrGoalCycleDetected is returned when a reparent would make a goal its
	// own ancestor.
	ErrGoalCycleDetected = errors.New("reparent would create a goal cycle")
	// ErrWrongPassphrase is returned when an encrypted export cannot be
	// decrypted with the supplied passphrase.
	ErrWrongPassphrase = errors.New("incorrect passphrase")
)

// Entity names the resource an operation touched, for error context.
type Entity string

const (
	EntityGoal      Entity = "goal"
	EntityHabit     Entity = "habit"
	EntityRelation  Entity = "relation"
	EntityWorkspace Entity = "workspace"
	EntityExport    Entity = "export"
)

type OpError struct {
	Op       string
	Resource Entity
	ID       int64
	Err      error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.ID > 0 {
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapErr(entity Entity, op string, id int64, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Resource: entity, ID: id, Err: err}
}

func wrapGoalErr(op string, id int64, err error) error {
	return wrapErr(EntityGoal, op, id, err)
}

func wrapHabitErr(op string, id int64, err error) error {
	return wrapErr(EntityHabit, op, id, err)
}
