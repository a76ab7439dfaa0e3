package config

// Database/application settings.
const (
	AppName               = "habitmap"
	DBFileName            = "habitmap.db"
	MaxPassphraseAttempts = 3
)

// Statuses shared across packages that do not need the typed enums.
const (
	StatusActive   = "active"
	StatusDone     = "done"
	StatusPaused   = "paused"
	StatusArchived = "archived"
)

// Map layout metrics. All values are canvas pixels; the SVG/PNG exporters
// consume them one to one.
const (
	GoalNodeWidth  = 180
	GoalNodeHeight = 56

	HabitNodeWidth  = 150
	HabitNodeHeight = 40
	// Main groups render the Main habit plus nested Subs, slightly wider so
	// the sub rows can indent.
	MainGroupWidth = 190
	// Extra height per Sub habit nested inside a Main group.
	SubNodeHeight = 32

	// Horizontal stagger applied per habit index so right-angle connectors
	// from the same goal never overlap.
	HabitIndexOffset = 26
	// Vertical distance from a goal to the first habit in its row.
	HabitVerticalOffset = 72
	// Vertical gap between consecutive habits in a row.
	HabitGap = 14

	// Horizontal gap between sibling goal subtrees.
	SiblingGap = 48
	// Minimum vertical distance between a goal and its child goals.
	GoalVerticalSpacing = 170
	// Margin between the bottom of a habit row and the first child goal.
	ChildTopMargin = 40

	// Shelf packing limit for independent root trees.
	DefaultMaxCanvasWidth = 2400
	CanvasMargin          = 40
	// Vertical gap between shelf rows of root trees.
	RootRowGap = 80
)
