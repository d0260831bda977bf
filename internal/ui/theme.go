package ui

import "xsurf/internal/geom"

type Theme struct {
	Window       geom.Color
	Header       geom.Color
	Border       geom.Color
	Text         geom.Color
	Button       geom.Color
	ButtonHover  geom.Color
	Toggle       geom.Color
	ToggleCursor geom.Color
	Slider       geom.Color
	SliderCursor geom.Color
	Progress     geom.Color
	ProgressBar  geom.Color
	Edit         geom.Color
	EditActive   geom.Color
	Close        geom.Color
	PaddingPx    float32
	RowGapPx     float32
}

func DefaultTheme() Theme {
	return Theme{
		Window:       geom.RGB(0x2D, 0x2D, 0x2D),
		Header:       geom.RGB(0x28, 0x28, 0x28),
		Border:       geom.RGB(0x41, 0x41, 0x41),
		Text:         geom.RGB(0xAF, 0xAF, 0xAF),
		Button:       geom.RGB(0x32, 0x32, 0x32),
		ButtonHover:  geom.RGB(0x28, 0x28, 0x28),
		Toggle:       geom.RGB(0x64, 0x64, 0x64),
		ToggleCursor: geom.RGB(0x2D, 0x2D, 0x2D),
		Slider:       geom.RGB(0x26, 0x26, 0x26),
		SliderCursor: geom.RGB(0x64, 0x64, 0x64),
		Progress:     geom.RGB(0x26, 0x26, 0x26),
		ProgressBar:  geom.RGB(0x64, 0x64, 0x64),
		Edit:         geom.RGB(0x26, 0x26, 0x26),
		EditActive:   geom.RGB(0x3C, 0x3C, 0x3C),
		Close:        geom.RGB(0xB4, 0x3C, 0x3C),
		PaddingPx:    4,
		RowGapPx:     4,
	}
}
