package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeSearch
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpExportPNG FileOperation = iota
	FileOpExportSVG
	FileOpExportTXT
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
)

// A terminal cell covers CellWidth x CellHeight screen pixels. The PNG export
// uses the same metrics, so one cell on screen is one cell in the picture.
const (
	CellWidth  = 8
	CellHeight = 16
)

const (
	minBoxWidth   = 5
	minBoxHeight  = 3
	maxSearchHits = 5
)
