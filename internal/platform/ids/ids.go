package ids

import "github.com/google/uuid"

// New returns a fresh random UUID string. Collisions are negligible even
// across concurrent processes.
func New() string {
	return uuid.NewString()
}
