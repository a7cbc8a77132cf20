package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Profiler writes the profiles requested in a [Config].
//
// Call [Profiler.Start] before the work to profile and [Profiler.Stop]
// after it. A nil Profiler, or one with nothing requested, does nothing.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	paths                map[Kind]string
	cpuFile              *os.File
	memProfileRate       int
	blockProfileRate     int
	mutexProfileFraction int
	started              bool
}

// Enabled reports whether any profile was requested.
func (p *Profiler) Enabled() bool {
	return p != nil && len(p.paths) > 0
}

// Start sets the runtime sampling rates and starts CPU profiling if it was
// requested. Calling Start again before [Profiler.Stop] does nothing.
func (p *Profiler) Start() error {
	if !p.Enabled() || p.started {
		return nil
	}

	runtime.MemProfileRate = p.memProfileRate
	runtime.SetBlockProfileRate(p.blockProfileRate)
	runtime.SetMutexProfileFraction(p.mutexProfileFraction)

	if path, ok := p.paths[KindCPU]; ok {
		f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
		if err != nil {
			return fmt.Errorf("create cpu profile: %w", err)
		}

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return errors.Join(fmt.Errorf("start cpu profile: %w", err), f.Close())
		}

		p.cpuFile = f
	}

	p.started = true

	return nil
}

// Stop ends CPU profiling and writes every requested snapshot profile. All
// profiles are attempted; their errors are joined. Stop without a matching
// [Profiler.Start] does nothing.
func (p *Profiler) Stop() error {
	if !p.Enabled() || !p.started {
		return nil
	}

	p.started = false

	var errs []error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("close cpu profile: %w", err))
		}

		p.cpuFile = nil
	}

	for _, k := range Kinds() {
		path, ok := p.paths[k]
		if !ok || k == KindCPU {
			continue
		}

		err := writeSnapshot(k, path)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func writeSnapshot(k Kind, path string) error {
	prof := pprof.Lookup(string(k))
	if prof == nil {
		return fmt.Errorf("%w: %s", ErrUnknownKind, k)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", k, err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("write %s profile: %w", k, err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close %s profile: %w", k, err)
	}

	return nil
}
