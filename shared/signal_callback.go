package main

/*
#include <stdlib.h>

typedef void (*signalCallback)(const char *);

static void callSignalCallback(void *cb, const char *data) {
	((signalCallback)cb)(data);
}
*/
import "C"

import (
	"unsafe"

	"github.com/status-im/status-wallet-go/signal"
)

// setSignalEventCallback routes every signal to cb as a JSON string.
// The string is freed once cb returns, so cb must copy it.
func setSignalEventCallback(cb unsafe.Pointer) {
	if cb == nil {
		signal.SetSignalHandler(nil)
		return
	}

	signal.SetSignalHandler(func(data []byte) {
		str := C.CString(string(data))
		defer C.free(unsafe.Pointer(str))
		C.callSignalCallback(cb, str)
	})
}
