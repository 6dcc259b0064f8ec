package core

// AddResult reports the outcome of adding a component.
type AddResult uint8

const (
	// AddSuccess means every usable entry was committed.
	AddSuccess AddResult = iota
	// AddFail means the component had no usable entries, or was unregistered
	// and lacked a component-relative box for an entry.
	AddFail
	// AddFailDensityConstraint means an entry exceeded the density ceiling.
	AddFailDensityConstraint
)

func (r AddResult) String() string {
	switch r {
	case AddSuccess:
		return "success"
	case AddFail:
		return "fail"
	case AddFailDensityConstraint:
		return "fail_density_constraint"
	default:
		return "unknown"
	}
}
