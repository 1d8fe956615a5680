package present

import sharedresources "github.com/concourse/sharedresources"

// Holder is the wire shape for one lock holder.
type Holder struct {
	PromotionID string `json:"promotion_id"`
	Value       string `json:"value,omitempty"`
}

// TakenLock is the wire shape for one resource's held-lock tally.
type TakenLock struct {
	Name       string   `json:"name"`
	ReadLocks  []Holder `json:"read_locks,omitempty"`
	WriteLocks []Holder `json:"write_locks,omitempty"`
}

// ForTakenLock converts a sharedresources.TakenLock into its wire shape.
func ForTakenLock(t sharedresources.TakenLock) TakenLock {
	return TakenLock{
		Name:       t.Name,
		ReadLocks:  forHolders(t.ReadLocks),
		WriteLocks: forHolders(t.WriteLocks),
	}
}

func forHolders(hs []sharedresources.Holder) []Holder {
	if len(hs) == 0 {
		return nil
	}
	out := make([]Holder, len(hs))
	for i, h := range hs {
		out[i] = Holder{PromotionID: h.PromotionID, Value: h.Value}
	}
	return out
}
