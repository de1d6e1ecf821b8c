//go:build windows

package dialog

import (
	"fmt"
	"image/color"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/taodev/jumplist/internal/icons"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procBeginPaint               = user32.NewProc("BeginPaint")
	procCreateIconFromResourceEx = user32.NewProc("CreateIconFromResourceEx")
	procCreateWindowEx           = user32.NewProc("CreateWindowExW")
	procDefWindowProc            = user32.NewProc("DefWindowProcW")
	procDestroyIcon              = user32.NewProc("DestroyIcon")
	procDestroyWindow            = user32.NewProc("DestroyWindow")
	procDispatchMessage          = user32.NewProc("DispatchMessageW")
	procDrawIconEx               = user32.NewProc("DrawIconEx")
	procDrawText                 = user32.NewProc("DrawTextW")
	procEndPaint                 = user32.NewProc("EndPaint")
	procFillRect                 = user32.NewProc("FillRect")
	procGetClientRect            = user32.NewProc("GetClientRect")
	procGetDC                    = user32.NewProc("GetDC")
	procGetMessage               = user32.NewProc("GetMessageW")
	procGetSystemMetrics         = user32.NewProc("GetSystemMetrics")
	procIsDialogMessage          = user32.NewProc("IsDialogMessageW")
	procKillTimer                = user32.NewProc("KillTimer")
	procLoadCursor               = user32.NewProc("LoadCursorW")
	procPostQuitMessage          = user32.NewProc("PostQuitMessage")
	procRegisterClassEx          = user32.NewProc("RegisterClassExW")
	procReleaseCapture           = user32.NewProc("ReleaseCapture")
	procReleaseDC                = user32.NewProc("ReleaseDC")
	procSendMessage              = user32.NewProc("SendMessageW")
	procSetFocus                 = user32.NewProc("SetFocus")
	procSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	procSetTimer                 = user32.NewProc("SetTimer")
	procSetWindowRgn             = user32.NewProc("SetWindowRgn")
	procShowWindow               = user32.NewProc("ShowWindow")
	procTranslateMessage         = user32.NewProc("TranslateMessage")
	procUpdateWindow             = user32.NewProc("UpdateWindow")

	procCreateFont         = gdi32.NewProc("CreateFontW")
	procCreateRoundRectRgn = gdi32.NewProc("CreateRoundRectRgn")
	procCreateSolidBrush   = gdi32.NewProc("CreateSolidBrush")
	procDeleteObject       = gdi32.NewProc("DeleteObject")
	procGetDeviceCaps      = gdi32.NewProc("GetDeviceCaps")
	procSelectObject       = gdi32.NewProc("SelectObject")
	procSetBkMode          = gdi32.NewProc("SetBkMode")
	procSetTextColor       = gdi32.NewProc("SetTextColor")

	procGetModuleHandle = kernel32.NewProc("GetModuleHandleW")
)

const (
	WS_POPUP     = 0x80000000
	WS_CHILD     = 0x40000000
	WS_VISIBLE   = 0x10000000
	WS_TABSTOP   = 0x00010000
	BS_OWNERDRAW = 0x0000000B

	WM_DESTROY       = 0x0002
	WM_PAINT         = 0x000F
	WM_CLOSE         = 0x0010
	WM_ERASEBKGND    = 0x0014
	WM_DRAWITEM      = 0x002B
	WM_NCLBUTTONDOWN = 0x00A1
	WM_COMMAND       = 0x0111
	WM_TIMER         = 0x0113
	WM_LBUTTONDOWN   = 0x0201

	HTCAPTION    = 2
	BN_CLICKED   = 0
	IDCANCEL     = 2
	SW_SHOW      = 5
	SM_CXSCREEN  = 0
	SM_CYSCREEN  = 1
	IDC_ARROW    = 32512
	LOGPIXELSY   = 90
	TRANSPARENT  = 1
	DI_NORMAL    = 0x0003
	ODS_SELECTED = 0x0001

	DT_CENTER     = 0x0001
	DT_VCENTER    = 0x0004
	DT_WORDBREAK  = 0x0010
	DT_SINGLELINE = 0x0020
	DT_CALCRECT   = 0x0400
	DT_NOPREFIX   = 0x0800

	FW_NORMAL         = 400
	DEFAULT_CHARSET   = 1
	CLEARTYPE_QUALITY = 5
)

const (
	className = "JumplistMessage"
	buttonID  = 1
	timerID   = 1
)

type point struct {
	X, Y int32
}

type rect struct {
	Left, Top, Right, Bottom int32
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
}

type wndClassEx struct {
	CbSize        uint32
	Style         uint32
	LpfnWndProc   uintptr
	CbClsExtra    int32
	CbWndExtra    int32
	HInstance     uintptr
	HIcon         uintptr
	HCursor       uintptr
	HbrBackground uintptr
	LpszMenuName  *uint16
	LpszClassName *uint16
	HIconSm       uintptr
}

type paintStruct struct {
	Hdc         uintptr
	FErase      int32
	RcPaint     rect
	FRestore    int32
	FIncUpdate  int32
	RgbReserved [32]byte
}

type drawItemStruct struct {
	CtlType    uint32
	CtlID      uint32
	ItemID     uint32
	ItemAction uint32
	ItemState  uint32
	HwndItem   uintptr
	HDC        uintptr
	RcItem     rect
	ItemData   uintptr
}

// window is the live state of one dialog.
type window struct {
	layout  Layout
	session *session
	hwnd    uintptr
	button  uintptr
	font    uintptr
	btnFont uintptr
	bgBrush uintptr
	icon    uintptr
}

var (
	registerOnce sync.Once
	registerErr  error
	wndProcPtr   uintptr

	windowsMu sync.Mutex
	windowsBy = map[uintptr]*window{}
)

func registerClass() error {
	registerOnce.Do(func() {
		// callbacks are never released, so one is shared by every dialog
		wndProcPtr = syscall.NewCallback(wndProc)

		hInstance, _, _ := procGetModuleHandle.Call(0)
		cursor, _, _ := procLoadCursor.Call(0, IDC_ARROW)
		name, _ := windows.UTF16PtrFromString(className)

		wc := wndClassEx{
			LpfnWndProc:   wndProcPtr,
			HInstance:     hInstance,
			HCursor:       cursor,
			LpszClassName: name,
		}
		wc.CbSize = uint32(unsafe.Sizeof(wc))
		if r, _, err := procRegisterClassEx.Call(uintptr(unsafe.Pointer(&wc))); r == 0 {
			registerErr = fmt.Errorf("RegisterClassEx: %w", err)
		}
	})
	return registerErr
}

func colorRef(c color.RGBA) uintptr {
	return uintptr(c.R) | uintptr(c.G)<<8 | uintptr(c.B)<<16
}

func utf16Ptr(s string) *uint16 {
	p, err := windows.UTF16PtrFromString(s)
	if err != nil {
		// embedded NUL; drop the text rather than fail the dialog
		p, _ = windows.UTF16PtrFromString("")
	}
	return p
}

func createFont(face string, points int) uintptr {
	dc, _, _ := procGetDC.Call(0)
	dpi, _, _ := procGetDeviceCaps.Call(dc, LOGPIXELSY)
	procReleaseDC.Call(0, dc)
	if dpi == 0 {
		dpi = 96
	}
	height := -int32(points * int(dpi) / 72)
	f, _, _ := procCreateFont.Call(
		uintptr(height), 0, 0, 0, FW_NORMAL,
		0, 0, 0, DEFAULT_CHARSET,
		0, 0, CLEARTYPE_QUALITY, 0,
		uintptr(unsafe.Pointer(utf16Ptr(face))),
	)
	return f
}

func createIcon(g icons.Glyph, size int) (uintptr, error) {
	img, err := icons.Render(g, size)
	if err != nil {
		return 0, err
	}
	data, err := icons.PNG(img)
	if err != nil {
		return 0, err
	}
	h, _, callErr := procCreateIconFromResourceEx.Call(
		uintptr(unsafe.Pointer(&data[0])), uintptr(len(data)),
		1, 0x00030000, uintptr(size), uintptr(size), 0,
	)
	runtime.KeepAlive(data)
	if h == 0 {
		return 0, fmt.Errorf("CreateIconFromResourceEx: %w", callErr)
	}
	return h, nil
}

// renderNative creates the dialog window and pumps a nested message loop on
// the calling OS thread until the session closes.
func renderNative(l Layout, s *session) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := registerClass(); err != nil {
		return err
	}

	w := &window{layout: l, session: s}
	w.font = createFont(l.FontFace, l.FontSize)
	w.btnFont = createFont(l.FontFace, l.ButtonFontSize)
	w.bgBrush, _, _ = procCreateSolidBrush.Call(colorRef(l.Theme.Background))
	if l.ShowIcon {
		icon, err := createIcon(l.Icon, l.IconRect.W)
		if err != nil {
			w.release()
			return err
		}
		w.icon = icon
	}

	sw, _, _ := procGetSystemMetrics.Call(SM_CXSCREEN)
	sh, _, _ := procGetSystemMetrics.Call(SM_CYSCREEN)
	x := (int32(sw) - int32(l.Width)) / 2
	y := (int32(sh) - int32(l.Height)) / 2

	hInstance, _, _ := procGetModuleHandle.Call(0)
	hwnd, _, err := procCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(utf16Ptr(className))),
		uintptr(unsafe.Pointer(utf16Ptr(l.Title))),
		WS_POPUP,
		uintptr(x), uintptr(y), uintptr(l.Width), uintptr(l.Height),
		0, 0, hInstance, 0,
	)
	if hwnd == 0 {
		w.release()
		return fmt.Errorf("CreateWindowEx: %w", err)
	}
	w.hwnd = hwnd

	windowsMu.Lock()
	windowsBy[hwnd] = w
	windowsMu.Unlock()

	br := l.ButtonRect()
	w.button, _, err = procCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(utf16Ptr("BUTTON"))),
		uintptr(unsafe.Pointer(utf16Ptr(l.ButtonText))),
		WS_CHILD|WS_VISIBLE|WS_TABSTOP|BS_OWNERDRAW,
		uintptr(br.X), uintptr(br.Y), uintptr(br.W), uintptr(br.H),
		hwnd, buttonID, hInstance, 0,
	)
	if w.button == 0 {
		procDestroyWindow.Call(hwnd)
		return fmt.Errorf("create button: %w", err)
	}

	// the window owns the region after SetWindowRgn succeeds
	rgn, _, _ := procCreateRoundRectRgn.Call(0, 0,
		uintptr(l.Width), uintptr(l.Height),
		uintptr(l.CornerRadius), uintptr(l.CornerRadius))
	if rgn != 0 {
		if r, _, _ := procSetWindowRgn.Call(hwnd, rgn, 1); r == 0 {
			procDeleteObject.Call(rgn)
		}
	}

	if l.TimerInterval > 0 {
		if r, _, _ := procSetTimer.Call(hwnd, timerID, uintptr(uint32(l.TimerInterval)), 0); r != 0 {
			s.armTimer(func() { procKillTimer.Call(hwnd, timerID) })
		}
	}

	procShowWindow.Call(hwnd, SW_SHOW)
	procUpdateWindow.Call(hwnd)
	procSetForegroundWindow.Call(hwnd)
	procSetFocus.Call(w.button)
	s.markShown()

	return w.loop()
}

func (w *window) loop() error {
	var m msg
	for w.session.State() != StateClosed {
		r, _, err := procGetMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case -1:
			w.close(ByClose)
			return fmt.Errorf("GetMessage: %w", err)
		case 0:
			// WM_QUIT belongs to the outer loop; close and hand it back
			w.close(ByClose)
			procPostQuitMessage.Call(m.WParam)
			return nil
		}
		if r, _, _ := procIsDialogMessage.Call(w.hwnd, uintptr(unsafe.Pointer(&m))); r != 0 {
			continue
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}
	return nil
}

// close dismisses the session and destroys the window. Later calls are
// no-ops, so a timer tick racing a click cannot close twice.
func (w *window) close(r Reason) {
	if w.session.dismiss(r) {
		procDestroyWindow.Call(w.hwnd)
	}
}

func (w *window) release() {
	for _, obj := range []uintptr{w.font, w.btnFont, w.bgBrush} {
		if obj != 0 {
			procDeleteObject.Call(obj)
		}
	}
	if w.icon != 0 {
		procDestroyIcon.Call(w.icon)
	}
	w.font, w.btnFont, w.bgBrush, w.icon = 0, 0, 0, 0
}

func lookup(hwnd uintptr) *window {
	windowsMu.Lock()
	defer windowsMu.Unlock()
	return windowsBy[hwnd]
}

func wndProc(hwnd uintptr, message uint32, wParam, lParam uintptr) uintptr {
	w := lookup(hwnd)
	if w == nil {
		r, _, _ := procDefWindowProc.Call(hwnd, uintptr(message), wParam, lParam)
		return r
	}

	switch message {
	case WM_ERASEBKGND:
		return 1
	case WM_PAINT:
		w.paint()
		return 0
	case WM_DRAWITEM:
		dis := (*drawItemStruct)(unsafe.Pointer(lParam))
		if dis.CtlID == buttonID {
			w.drawButton(dis)
			return 1
		}
	case WM_COMMAND:
		id, code := wParam&0xFFFF, (wParam>>16)&0xFFFF
		switch {
		case id == buttonID && code == BN_CLICKED:
			w.close(ByButton)
			return 0
		case id == IDCANCEL:
			w.close(ByClose)
			return 0
		}
	case WM_TIMER:
		if wParam == timerID {
			w.close(ByTimer)
			return 0
		}
	case WM_LBUTTONDOWN:
		// no title bar: dragging the message area moves the window
		y := int16((lParam >> 16) & 0xFFFF)
		if int(y) < w.layout.MessageRect().H {
			procReleaseCapture.Call()
			procSendMessage.Call(hwnd, WM_NCLBUTTONDOWN, HTCAPTION, 0)
			return 0
		}
	case WM_CLOSE:
		w.close(ByClose)
		return 0
	case WM_DESTROY:
		windowsMu.Lock()
		delete(windowsBy, hwnd)
		windowsMu.Unlock()
		// covers DestroyWindow calls that did not come through close
		w.session.dismiss(ByClose)
		w.release()
		return 0
	}
	r, _, _ := procDefWindowProc.Call(hwnd, uintptr(message), wParam, lParam)
	return r
}

func (w *window) paint() {
	var ps paintStruct
	hdc, _, _ := procBeginPaint.Call(w.hwnd, uintptr(unsafe.Pointer(&ps)))
	if hdc == 0 {
		return
	}
	defer procEndPaint.Call(w.hwnd, uintptr(unsafe.Pointer(&ps)))

	l := w.layout
	var client rect
	procGetClientRect.Call(w.hwnd, uintptr(unsafe.Pointer(&client)))
	procFillRect.Call(hdc, uintptr(unsafe.Pointer(&client)), w.bgBrush)

	if w.icon != 0 {
		ir := l.IconRect
		procDrawIconEx.Call(hdc, uintptr(ir.X), uintptr(ir.Y), w.icon,
			uintptr(ir.W), uintptr(ir.H), 0, 0, DI_NORMAL)
	}

	mr := l.MessageRect()
	area := rect{
		Left:   int32(mr.X + l.Padding.Left),
		Top:    int32(mr.Y + l.Padding.Top),
		Right:  int32(mr.X + mr.W - l.Padding.Right),
		Bottom: int32(mr.Y + mr.H - l.Padding.Bottom),
	}

	old, _, _ := procSelectObject.Call(hdc, w.font)
	defer procSelectObject.Call(hdc, old)
	procSetTextColor.Call(hdc, colorRef(l.Theme.Foreground))
	procSetBkMode.Call(hdc, TRANSPARENT)

	text := utf16Ptr(l.Message)
	const flags = DT_CENTER | DT_WORDBREAK | DT_NOPREFIX

	// DT_VCENTER only applies to single lines, so centre by measuring
	measured := area
	procDrawText.Call(hdc, uintptr(unsafe.Pointer(text)), ^uintptr(0), uintptr(unsafe.Pointer(&measured)), flags|DT_CALCRECT)
	if h := measured.Bottom - measured.Top; h < area.Bottom-area.Top {
		area.Top += (area.Bottom - area.Top - h) / 2
	}
	procDrawText.Call(hdc, uintptr(unsafe.Pointer(text)), ^uintptr(0), uintptr(unsafe.Pointer(&area)), flags)
}

func (w *window) drawButton(dis *drawItemStruct) {
	fill := w.layout.Theme.Button
	if dis.ItemState&ODS_SELECTED != 0 {
		fill = w.layout.Theme.ButtonPressed
	}
	brush, _, _ := procCreateSolidBrush.Call(colorRef(fill))
	procFillRect.Call(dis.HDC, uintptr(unsafe.Pointer(&dis.RcItem)), brush)
	procDeleteObject.Call(brush)

	old, _, _ := procSelectObject.Call(dis.HDC, w.btnFont)
	procSetTextColor.Call(dis.HDC, colorRef(w.layout.Theme.Foreground))
	procSetBkMode.Call(dis.HDC, TRANSPARENT)
	r := dis.RcItem
	procDrawText.Call(dis.HDC, uintptr(unsafe.Pointer(utf16Ptr(w.layout.ButtonText))), ^uintptr(0),
		uintptr(unsafe.Pointer(&r)), DT_CENTER|DT_VCENTER|DT_SINGLELINE)
	procSelectObject.Call(dis.HDC, old)
}
