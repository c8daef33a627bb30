package core

// Color is a semantic foreground color for a screen cell.
// The platform decides how each one looks in the terminal.
type Color uint8

const (
	ColorDefault Color = iota
	ColorFloor
	ColorWall
	ColorFood
	ColorSnake
	ColorSnakeHead
	ColorHUD
	ColorCaption
	ColorTitle
	ColorSelected
	ColorDim
)
