package discovery

import (
	"context"
	"errors"

	"github.com/specialistvlad/appregister/internal/ctxlog"
)

// Status is the outcome of importing a submodule from one component.
type Status string

const (
	StatusImported Status = "imported"
	StatusAbsent   Status = "absent"
	StatusFailed   Status = "failed"
)

// Result records what happened at one location during a scan.
type Result struct {
	Location  string
	Submodule string
	Status    Status
	Err       error
}

// Spec is the work of one scan: the locations to visit, in order, and the
// submodule to import from each. It is taken from the loader when the scan
// starts, so it reflects the host's component list at that moment.
type Spec struct {
	Locations []string
	Submodule string
}

// NewSpec builds the scan spec for submodule from loader's current components.
func NewSpec(loader ComponentLoader, submodule string) Spec {
	return Spec{
		Locations: loader.Components(),
		Submodule: submodule,
	}
}

type scanOptions struct {
	onResult func(Result)
}

// ScanOption configures Scan.
type ScanOption func(*scanOptions)

// OnResult registers fn to be called with the outcome at every location
// visited, including the one that stops the scan.
func OnResult(fn func(Result)) ScanOption {
	return func(o *scanOptions) {
		o.onResult = fn
	}
}

// Scan imports submodule from each of loader's components in order. A
// component that does not carry the submodule is skipped. Any other failure
// stops the scan and is returned unchanged; registrations made by earlier
// components are kept.
func Scan(ctx context.Context, loader ComponentLoader, submodule string, opts ...ScanOption) error {
	if submodule == "" {
		return ErrEmptySubmodule
	}
	var o scanOptions
	for _, opt := range opts {
		opt(&o)
	}
	return NewSpec(loader, submodule).run(ctx, loader, o)
}

func (s Spec) run(ctx context.Context, loader ComponentLoader, o scanOptions) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scanning components.", "submodule", s.Submodule, "components", len(s.Locations))

	report := func(r Result) {
		if o.onResult != nil {
			o.onResult(r)
		}
	}

	for _, loc := range s.Locations {
		err := loader.Import(loc, s.Submodule)
		switch {
		case err == nil:
			logger.Debug("Imported submodule.", "component", loc, "submodule", s.Submodule)
			report(Result{Location: loc, Submodule: s.Submodule, Status: StatusImported})
		case errors.Is(err, ErrModuleNotFound) && !loader.HasSubmodule(loc, s.Submodule):
			logger.Debug("Component has no such submodule.", "component", loc, "submodule", s.Submodule)
			report(Result{Location: loc, Submodule: s.Submodule, Status: StatusAbsent})
		default:
			logger.Error("Submodule failed to import.", "component", loc, "submodule", s.Submodule, "error", err)
			report(Result{Location: loc, Submodule: s.Submodule, Status: StatusFailed, Err: err})
			return err
		}
	}
	return nil
}
