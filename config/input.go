package config

// ActionID represents a logical sandbox action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionDrop
	ActionToggleDebug
	ActionSaveTuning
	ActionReload
	ActionNextLevel
	ActionCount // Must be last - used for array sizing
)
