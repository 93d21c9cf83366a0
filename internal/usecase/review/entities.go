package review

import "time"

type DecisionDTO struct {
	ReviewID  string    `json:"review_id,omitempty"`
	LoanID    uint64    `json:"loan_id"`
	Status    string    `json:"status"`
	Reason    *string   `json:"reason,omitempty"`
	DecidedBy uint64    `json:"decided_by"`
	DecidedAt time.Time `json:"decided_at"`
}
