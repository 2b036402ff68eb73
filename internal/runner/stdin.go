package runner

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/jsminer/jsminer/internal/scan"
)

// startStdinToggle reads single keypresses from stdin and toggles the miner
// pause gate on Enter or Space, so long crawls can be held while the target
// recovers. It returns a cleanup function that restores the terminal state.
// When stdin is not a terminal (piped input, CI) it returns a nil pauser and
// a no-op cleanup.
func startStdinToggle(quiet bool) (pauser *scan.Pauser, cleanup func()) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, func() {}
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		if !quiet {
			fmt.Fprintf(os.Stderr, "[!] Raw terminal unavailable, pause disabled: %v\n", err)
		}
		return nil, func() {}
	}

	// MakeRaw also disables OPOST, which breaks \n to \r\n translation and
	// misaligns the progress line. Raw input is all that is needed here.
	fixOutputProcessing(fd)

	pauser = scan.NewPauser()

	cleanup = func() {
		_ = term.Restore(fd, oldState)
	}

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}

			switch buf[0] {
			case 0x03:
				// Ctrl+C arrives as a byte in raw mode. Restore the
				// terminal and re-send SIGINT so signal.NotifyContext
				// cancels the run normally.
				_ = term.Restore(fd, oldState)
				sendInterrupt()
				return
			case '\r', '\n', ' ':
				paused := pauser.Toggle()
				if quiet {
					continue
				}
				if paused {
					fmt.Fprintf(os.Stderr, "\r\033[K[*] Mining paused, press Enter or Space to resume\n")
				} else {
					fmt.Fprintf(os.Stderr, "\r\033[K[*] Mining resumed\n")
				}
			}
		}
	}()

	return pauser, cleanup
}
