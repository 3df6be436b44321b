package lifecycle

import "fieldservice/internal/domain/entities"

// DeriveDisplayStatus projects the status shown for e. A sent estimate shows as
// followup_pending while a pending estimate_followup task references it, and as
// sent_no_followup otherwise. Every other status shows as itself.
//
// The result depends on the pending task set at read time and must not be stored.
func DeriveDisplayStatus(e entities.Estimate, pendingTasks []entities.Activity) entities.DisplayStatus {
	if e.Status != entities.EstimateStatusSent {
		return entities.DisplayStatus(e.Status)
	}
	if HasPendingFollowUp(e.ID, pendingTasks) {
		return entities.DisplayStatusFollowUpPending
	}
	return entities.DisplayStatusSentNoFollowUp
}

// HasPendingFollowUp reports whether tasks holds an open follow-up for estimateID.
func HasPendingFollowUp(estimateID string, tasks []entities.Activity) bool {
	for _, t := range tasks {
		if !t.IsPending() {
			continue
		}
		if t.Metadata[entities.MetaTaskType] == entities.TaskTypeEstimateFollowUp &&
			t.Metadata[entities.MetaEstimateID] == estimateID {
			return true
		}
	}
	return false
}
