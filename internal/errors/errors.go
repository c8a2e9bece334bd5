package errors

import "fmt"

var (
	ErrNoSelection      = fmt.Errorf("no file selected")
	ErrTransport        = fmt.Errorf("upload transport failure")
	ErrDecode           = fmt.Errorf("upload response decode failure")
	ErrUnexpectedStatus = fmt.Errorf("unexpected response status")
	ErrUnsupportedType  = fmt.Errorf("unsupported file type")
	ErrNoServer         = fmt.Errorf("no receiver found")
)
