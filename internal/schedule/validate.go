package schedule

import (
	"github.com/jcastellanos/jobshopd/pkg/models"
)

type opKey struct {
	jobID string
	opID  string
}

// Validate checks the cross-entity consistency invariants of a normalized
// schedule. It is read-only and aborts on the first violation, naming the
// broken invariant; no partial repair is attempted.
func Validate(s *models.Schedule) error {
	machineIDs := make(map[string]bool, len(s.Machines))
	for _, m := range s.Machines {
		if machineIDs[m.ID] {
			return models.Validationf("machines", "duplicate machine id %q", m.ID)
		}
		machineIDs[m.ID] = true
	}

	seen := make(map[opKey]bool, len(s.Operations))
	var maxEnd float64
	for _, op := range s.Operations {
		if op.Start < 0 || op.End < 0 || op.Duration < 0 {
			return models.Validationf("operations", "operation %s has negative times", op.OpID)
		}
		if op.End < op.Start {
			return models.Validationf("operations", "operation %s ends before it starts", op.OpID)
		}
		if op.End != op.Start+op.Duration {
			return models.Validationf("operations",
				"operation %s end %v does not equal start %v + duration %v",
				op.OpID, op.End, op.Start, op.Duration)
		}
		if !machineIDs[op.MachineID] {
			return models.Validationf("operations",
				"operation %s references unknown machine %q", op.OpID, op.MachineID)
		}
		key := opKey{jobID: op.JobID, opID: op.OpID}
		if seen[key] {
			return models.Validationf("operations",
				"duplicate operation (jobId=%s, opId=%s)", op.JobID, op.OpID)
		}
		seen[key] = true
		if op.End > maxEnd {
			maxEnd = op.End
		}
	}

	if s.Makespan < maxEnd {
		return models.Validationf("makespan",
			"must be >= max operation end %v; got %v", maxEnd, s.Makespan)
	}
	return nil
}
