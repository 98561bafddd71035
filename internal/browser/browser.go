// Package browser hands URLs to the desktop's default browser.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

var ErrUnsupportedPlatform = errors.New("no browser launcher for this platform")

// Command returns the launcher invocation for goos.
func Command(goos, url string) (name string, args []string, err error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	}
	return "", nil, fmt.Errorf("%s: %w", goos, ErrUnsupportedPlatform)
}

// Open starts the default browser on url without waiting for it.
func Open(url string) error {
	name, args, err := Command(runtime.GOOS, url)
	if err != nil {
		return err
	}
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("launching %s: %w", name, err)
	}
	return nil
}
