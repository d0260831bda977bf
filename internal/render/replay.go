package render

import "xsurf/internal/command"

// Replay draws list onto s in order. Commands of unknown type are skipped
// so the toolkit can grow its command set ahead of the backend.
func Replay(s *Surface, list command.List) {
	if list.Len() == 0 {
		return
	}
	for _, cmd := range list.All() {
		switch c := cmd.(type) {
		case command.Nop:
		case command.Scissor:
			s.SetClip(c.Rect)
		case command.Line:
			s.DrawLine(c.Begin, c.End, c.Color)
		case command.Rect:
			s.DrawRect(c.Rect, c.Color)
		case command.Circle:
			s.DrawCircle(c.Rect, c.Color)
		case command.Triangle:
			s.DrawTriangle(c.A, c.B, c.C, c.Color)
		case command.Text:
			s.DrawText(c.Rect, c.String, c.Font, c.Background, c.Foreground)
		}
	}
}
