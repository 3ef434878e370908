package domain

// HealthStatus indicates doctor check outcomes, ordered by severity.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

func (s HealthStatus) severity() int {
	switch s {
	case HealthOK:
		return 0
	case HealthWarn:
		return 1
	default:
		return 2
	}
}

// HealthCheck is one diagnostic result.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport aggregates checks in the order they ran.
type HealthReport struct {
	Checks []HealthCheck
}

// Worst returns the most severe status in the report, HealthOK when empty.
func (r HealthReport) Worst() HealthStatus {
	worst := HealthOK
	for _, c := range r.Checks {
		if c.Status.severity() > worst.severity() {
			worst = c.Status
		}
	}
	return worst
}

// Count returns how many checks ended with status.
func (r HealthReport) Count(status HealthStatus) int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == status {
			n++
		}
	}
	return n
}
