package pidcontrol

import "testing"

func TestPIDHistoryBoundedFIFO(t *testing.T) {
	h := NewPIDHistory(2)
	c, err := NewPIDPlus(1, 0, 0, []Modifier{h}, WithDefaultDt(1))
	if err != nil {
		t.Fatalf("NewPIDPlus: %v", err)
	}
	// construction already produced Attached + InitialConditions = 2 entries
	if len(h.Entries()) != 2 {
		t.Fatalf("Entries() len = %d, want 2 after construction", len(h.Entries()))
	}
	if h.Entries()[0].Name != "Attached" {
		t.Fatalf("first entry = %s, want Attached", h.Entries()[0].Name)
	}
	if h.Entries()[1].Name != "InitialConditions" {
		t.Fatalf("second entry = %s, want InitialConditions", h.Entries()[1].Name)
	}

	if _, err := c.Update(0); err != nil {
		t.Fatalf("Update: %v", err)
	}
	// Update fires BaseTerms, ModifyTerms, CalculateU: three more events,
	// but the FIFO retains only the most recent 2.
	if len(h.Entries()) != 2 {
		t.Fatalf("Entries() len = %d, want 2 (bounded)", len(h.Entries()))
	}
	last := h.Entries()[len(h.Entries())-1]
	if last.Name != "CalculateU" {
		t.Fatalf("most recent entry = %s, want CalculateU", last.Name)
	}
}

func TestPIDHistoryEventCountsSurviveEviction(t *testing.T) {
	h := NewPIDHistory(1)
	c, err := NewPIDPlus(1, 0, 0, []Modifier{h}, WithDefaultDt(1))
	if err != nil {
		t.Fatalf("NewPIDPlus: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := c.Update(0); err != nil {
			t.Fatalf("Update %d: %v", i, err)
		}
	}
	counts := h.EventCounts()
	if counts["BaseTerms"] != 3 {
		t.Fatalf("BaseTerms count = %d, want 3 even though the FIFO only keeps 1 entry", counts["BaseTerms"])
	}
}

func TestPIDHistoryCountsAttached(t *testing.T) {
	h := NewPIDHistory(100)
	if _, err := NewPIDPlus(1, 0, 0, []Modifier{h}, WithDefaultDt(1)); err != nil {
		t.Fatalf("NewPIDPlus: %v", err)
	}
	if got := h.EventCounts()["Attached"]; got != 1 {
		t.Fatalf("EventCounts()[Attached] = %d, want 1", got)
	}
}

func TestPIDHistoryDetail(t *testing.T) {
	h := NewPIDHistory(5, WithHistoryDetail())
	c, err := NewPIDPlus(1, 0, 0, []Modifier{h}, WithDefaultDt(1))
	if err != nil {
		t.Fatalf("NewPIDPlus: %v", err)
	}
	if err := c.SetSetpoint(3); err != nil {
		t.Fatalf("SetSetpoint: %v", err)
	}
	found := false
	for _, e := range h.Entries() {
		if e.Name == "SetpointChange" {
			found = true
			if e.Detail == "" {
				t.Fatalf("expected a non-empty detail string for SetpointChange")
			}
		}
	}
	if !found {
		t.Fatalf("expected a SetpointChange entry")
	}
}
