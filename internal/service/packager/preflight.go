package packager

import (
	"context"
	"slices"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/houdini-package/internal/logger"
)

// applicationExecutables are the Houdini front-ends that keep install files open.
// hserver, the license server, is always running and is not listed.
//
//nolint:gochecknoglobals // Static list.
var applicationExecutables = []string{
	"houdini",
	"houdinifx",
	"houdinicore",
	"happrentice",
	"hindie",
	"hython",
	"hbatch",
}

// processLister matches ps.Processes.
type processLister func() ([]ps.Process, error)

// runningApplications returns the executables of running Houdini processes.
func runningApplications(list processLister) ([]string, error) {
	processes, err := list()
	if err != nil {
		return nil, err
	}

	var found []string

	for _, p := range processes {
		name := strings.TrimSuffix(strings.ToLower(p.Executable()), ".exe")
		if slices.Contains(applicationExecutables, name) && !slices.Contains(found, name) {
			found = append(found, name)
		}
	}

	slices.Sort(found)

	return found, nil
}

// warnIfRunning logs a warning when Houdini runs on this machine.
// Files may then be locked (Windows) or rewritten while they are copied.
func warnIfRunning(ctx context.Context, list processLister) {
	names, err := runningApplications(list)
	if err != nil {
		logger.DebugKV(ctx, "Unable to list processes", "error", err)
		return
	}

	if len(names) > 0 {
		logger.WarnKV(ctx, "Houdini is running, copied files may be locked or inconsistent",
			"processes", strings.Join(names, ", "))
	}
}
