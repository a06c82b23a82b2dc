package interactive

import (
	"github.com/spdxbridge/sdg/progresscore"
)

// Progress tracking lives in progresscore; these aliases keep the UI code
// free of an extra import.
type ProgressTracker = progresscore.ProgressTracker
type TrackedStep = progresscore.TrackedStep
type ProgressStats = progresscore.ProgressStats

var NewProgressTracker = progresscore.NewProgressTracker
