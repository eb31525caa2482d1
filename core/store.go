package core

import "context"

// Collection keys
const (
	GradesKey      = "grades"
	StudentsKey    = "students"
	AssignmentsKey = "assignments"
	ProfileKey     = "teacherInfo"

	// written by the first client, read-only here
	LegacyTeacherNameKey = "teacherName"
	LegacySchoolIconKey  = "schoolIcon"
	LegacyAppNameKey     = "appName"
)

// Store is a persistent key-value store of serialized collections.
type Store interface {
	// Get returns ErrNoRecord if key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}
