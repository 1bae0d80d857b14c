package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidProjectStatus = errors.New("invalid project status")

type ProjectStatus string

const (
	ProjectStatusPlanned    ProjectStatus = "planned"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch st := ProjectStatus(s); st {
	case ProjectStatusPlanned, ProjectStatusInProgress, ProjectStatusCompleted:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidProjectStatus, s)
	}
}

type Project struct {
	ID          string
	Name        string
	Description string
	Status      ProjectStatus
}
