package event

type GameAction int

const (
	ActionUnknown GameAction = iota
	ActionQuit
	ActionMoveLeft
	ActionMoveRight
	ActionSoftDrop
	ActionRotateCCW
)

func (a GameAction) String() string {
	switch a {
	case ActionQuit:
		return "Quit"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionRotateCCW:
		return "RotateCCW"
	default:
		return "Unknown"
	}
}
