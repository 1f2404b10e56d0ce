//go:build windows

package hook

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/example/glasspen/internal/keys"
)

var (
	user32              = windows.NewLazySystemDLL("user32.dll")
	setWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	callNextHookEx      = user32.NewProc("CallNextHookEx")
	unhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	peekMessage         = user32.NewProc("PeekMessageW")
)

const (
	whKeyboardLL = 13
	wmKeydown    = 0x0100
	wmKeyup      = 0x0101
	wmSyskeydown = 0x0104
	wmSyskeyup   = 0x0105
	pmRemove     = 0x0001
)

type kbdllhookstruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type winMsg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// winSource installs a WH_KEYBOARD_LL hook. The hook procedure runs on the
// thread that installed it, so Install pins a goroutine to an OS thread and
// pumps its message queue until Uninstall.
type winSource struct {
	mu      sync.Mutex
	hook    uintptr
	done    chan struct{}
	swallow func(keys.Code) bool
}

// NewSource returns the Windows capture backend. When swallow returns true
// for a code, the key-down is consumed at the hook level so it never
// reaches the application underneath the overlay.
func NewSource(swallow func(keys.Code) bool) Source {
	return &winSource{swallow: swallow}
}

// installResult carries the hook handle back from the pump goroutine.
// Install stores it while still holding the mutex; the pump never takes
// the lock, so the handoff cannot contend with it.
type installResult struct {
	hook uintptr
	err  error
}

func (s *winSource) Install(cb func(Event)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hook != 0 {
		return nil
	}

	done := make(chan struct{})
	resCh := make(chan installResult, 1)
	go s.run(cb, done, resCh)
	res := <-resCh
	if res.err != nil {
		return res.err
	}
	s.hook = res.hook
	s.done = done
	return nil
}

func (s *winSource) run(cb func(Event), done <-chan struct{}, resCh chan<- installResult) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	proc := func(nCode int32, wParam uintptr, lParam uintptr) uintptr {
		// The contract here is absolute: no blocking, no panics escaping,
		// and the event is always forwarded down the hook chain unless we
		// deliberately swallow it.
		swallowed := false
		if nCode >= 0 {
			info := (*kbdllhookstruct)(unsafe.Pointer(lParam))
			down := wParam == wmKeydown || wParam == wmSyskeydown
			if code, ok := vkToCode[info.vkCode]; ok {
				cb(Event{Code: code, Down: down})
				if down && s.swallow != nil && s.swallow(code) {
					swallowed = true
				}
			}
		}
		if swallowed {
			return 1
		}
		r, _, _ := callNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return r
	}

	hook, _, err := setWindowsHookEx.Call(whKeyboardLL, windows.NewCallback(proc), 0, 0)
	if hook == 0 {
		resCh <- installResult{err: fmt.Errorf("SetWindowsHookEx: %w", err)}
		return
	}
	resCh <- installResult{hook: hook}

	var m winMsg
	for {
		select {
		case <-done:
			return
		default:
			r, _, _ := peekMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
			if r == 0 {
				runtime.Gosched()
			}
		}
	}
}

func (s *winSource) Uninstall() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hook == 0 {
		return nil
	}
	r, _, err := unhookWindowsHookEx.Call(s.hook)
	s.hook = 0
	close(s.done)
	s.done = nil
	if r == 0 {
		return fmt.Errorf("UnhookWindowsHookEx: %w", err)
	}
	return nil
}

// vkToCode translates virtual-key codes into the shared key space. The
// low-level hook reports sided modifier codes directly.
var vkToCode = map[uint32]keys.Code{
	0x1B: keys.CodeEscape,
	0x09: keys.CodeTab,
	0x0D: keys.CodeEnter,
	0x20: keys.CodeSpace,

	0xA0: keys.CodeLeftShift,
	0xA1: keys.CodeRightShift,
	0xA2: keys.CodeLeftCtrl,
	0xA3: keys.CodeRightCtrl,
	0xA4: keys.CodeLeftAlt,
	0xA5: keys.CodeRightAlt,
	0x5B: keys.CodeLeftMeta,
	0x5C: keys.CodeRightMeta,

	'A': keys.CodeA, 'B': keys.CodeB, 'C': keys.CodeC, 'D': keys.CodeD,
	'E': keys.CodeE, 'F': keys.CodeF, 'G': keys.CodeG, 'H': keys.CodeH,
	'I': keys.CodeI, 'J': keys.CodeJ, 'K': keys.CodeK, 'L': keys.CodeL,
	'M': keys.CodeM, 'N': keys.CodeN, 'O': keys.CodeO, 'P': keys.CodeP,
	'Q': keys.CodeQ, 'R': keys.CodeR, 'S': keys.CodeS, 'T': keys.CodeT,
	'U': keys.CodeU, 'V': keys.CodeV, 'W': keys.CodeW, 'X': keys.CodeX,
	'Y': keys.CodeY, 'Z': keys.CodeZ,

	0x70: keys.CodeF1, 0x71: keys.CodeF2, 0x72: keys.CodeF3,
	0x73: keys.CodeF4, 0x74: keys.CodeF5, 0x75: keys.CodeF6,
	0x76: keys.CodeF7, 0x77: keys.CodeF8, 0x78: keys.CodeF9,
	0x79: keys.CodeF10, 0x7A: keys.CodeF11, 0x7B: keys.CodeF12,
}
