// Package open launches links with the system's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Start opens link in the default browser without waiting for it to exit.
func Start(link string) error {
	cmd, err := command(runtime.GOOS, link)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func command(goos, link string) (*exec.Cmd, error) {
	switch goos {
	case "windows":
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", link), nil
	case "darwin":
		return exec.Command("open", link), nil
	case "android":
		return exec.Command("termux-open-url", link), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", link), nil
	default:
		return nil, fmt.Errorf("opening links is not supported on %s", goos)
	}
}
