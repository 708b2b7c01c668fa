//go:build !windows && !darwin && !linux

package input

type stubPaster struct{}

func newPaster() (Paster, error) {
	return stubPaster{}, nil
}

func (stubPaster) Paste() error {
	return ErrSimulationUnavailable
}
