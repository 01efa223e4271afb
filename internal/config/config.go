package config

const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "Galaxy Generator - drag: orbit, wheel: zoom, double click: fullscreen, P: panel, Esc/Q: quit"

	// Panel placement, from the top-right corner
	PanelMarginX = 12
	PanelMarginY = 12

	// Visualization parameters
	RotationSpeed = 0.1 // rad/s
	MaxPixelRatio = 2.0
	CameraFov     = 75.0
	CameraNear    = 0.1
	CameraFar     = 100.0
	DampingFactor = 0.05

	// Double click / tap detection
	DoubleClickMillis = 300
	DoubleClickSlop   = 8
)
