//go:build tools
// +build tools

// Package tools tracks tool dependencies (mockgen) so go generate works on a
// fresh checkout.
package articleuploader

import (
	_ "go.uber.org/mock/mockgen"
)
