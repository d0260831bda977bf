package x11

import (
	"fmt"

	"xsurf/internal/platform"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// keymap caches the server's keycode to keysym table.
type keymap struct {
	min     xproto.Keycode
	perCode int
	syms    []xproto.Keysym
}

func (k *keymap) load(conn *xgb.Conn, setup *xproto.SetupInfo) error {
	count := int(setup.MaxKeycode) - int(setup.MinKeycode) + 1
	reply, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, byte(count)).Reply()
	if err != nil {
		return fmt.Errorf("get keyboard mapping: %w", err)
	}
	k.min = setup.MinKeycode
	k.perCode = int(reply.KeysymsPerKeycode)
	k.syms = reply.Keysyms
	return nil
}

// lookup returns KeyNone when the keycode has no symbol.
func (k *keymap) lookup(code xproto.Keycode, state uint16) platform.Keysym {
	if code < k.min || k.perCode == 0 {
		return platform.KeyNone
	}
	i := int(code-k.min) * k.perCode
	if i >= len(k.syms) {
		return platform.KeyNone
	}
	sym := platform.Keysym(k.syms[i])
	if state&xproto.ModMaskShift == 0 {
		return sym
	}
	if k.perCode > 1 && i+1 < len(k.syms) {
		if shifted := platform.Keysym(k.syms[i+1]); shifted != platform.KeyNone {
			return shifted
		}
	}
	if sym >= 'a' && sym <= 'z' {
		return sym - 'a' + 'A'
	}
	return sym
}
