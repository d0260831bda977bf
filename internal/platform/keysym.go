package platform

// Keysym identifies a key symbol using X11 keysym values. Printable ASCII
// keysyms equal their character code.
type Keysym uint32

const (
	KeyNone      Keysym = 0
	KeySpace     Keysym = 0x0020
	KeyBackSpace Keysym = 0xff08
	KeyTab       Keysym = 0xff09
	KeyReturn    Keysym = 0xff0d
	KeyEscape    Keysym = 0xff1b
	KeyDelete    Keysym = 0xffff
	KeyShiftL    Keysym = 0xffe1
	KeyShiftR    Keysym = 0xffe2
	KeyControlL  Keysym = 0xffe3
	KeyControlR  Keysym = 0xffe4
)

// Printable reports whether k is a visible ASCII character (space excluded).
func (k Keysym) Printable() bool {
	return k > 32 && k < 127
}
