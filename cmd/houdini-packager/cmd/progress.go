package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/oshokin/houdini-package/internal/copier"
)

// newProgress returns a copy progress callback drawing a spinner on w and a
// function stopping it. Both are no-ops unless w is a terminal.
func newProgress(w io.Writer) (func(copier.Stats), func()) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil, func() {}
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = " Copying installation..."
	s.Start()

	update := func(stats copier.Stats) {
		s.Lock()
		s.Suffix = fmt.Sprintf(" Copied %d files, %s", stats.Files,
			humanize.Bytes(uint64(stats.Bytes))) //nolint:gosec // Byte counts are never negative.
		s.Unlock()
	}

	var once sync.Once

	return update, func() { once.Do(s.Stop) }
}
