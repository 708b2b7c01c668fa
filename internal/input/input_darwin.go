//go:build darwin

package input

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

static int accessibilityTrusted(void) {
    return AXIsProcessTrusted() ? 1 : 0;
}

// kVK_ANSI_V = 9
static int pasteChord(void) {
    CGEventRef down = CGEventCreateKeyboardEvent(NULL, 9, true);
    CGEventRef up = CGEventCreateKeyboardEvent(NULL, 9, false);
    if (down == NULL || up == NULL) {
        if (down != NULL) CFRelease(down);
        if (up != NULL) CFRelease(up);
        return 0;
    }

    CGEventSetFlags(down, kCGEventFlagMaskCommand);
    CGEventSetFlags(up, kCGEventFlagMaskCommand);

    CGEventPost(kCGHIDEventTap, down);
    CGEventPost(kCGHIDEventTap, up);

    CFRelease(down);
    CFRelease(up);
    return 1;
}
*/
import "C"

import "errors"

type darwinPaster struct{}

func newPaster() (Paster, error) {
	return &darwinPaster{}, nil
}

// Paste проверяет разрешение Accessibility при каждом вызове: пользователь
// может выдать его, не перезапуская приложение.
func (p *darwinPaster) Paste() error {
	if C.accessibilityTrusted() == 0 {
		return unavailable(errors.New("accessibility permission not granted"))
	}
	if C.pasteChord() == 0 {
		return unavailable(errors.New("CGEventCreateKeyboardEvent failed"))
	}
	return nil
}
