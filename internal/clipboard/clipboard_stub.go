//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "fmt"

func writePNG([]byte) error {
	return fmt.Errorf("clipboard image operations are not supported on this platform")
}
