package pidcontrol

import "testing"

func TestIWindupSymmetricClamp(t *testing.T) {
	w, err := NewIWindup(5)
	if err != nil {
		t.Fatalf("NewIWindup: %v", err)
	}
	c, err := NewPIDPlus(0, 1, 0, []Modifier{w}, WithDefaultDt(1))
	if err != nil {
		t.Fatalf("NewPIDPlus: %v", err)
	}
	if err := c.SetSetpoint(10); err != nil {
		t.Fatalf("SetSetpoint: %v", err)
	}

	var u float64
	for i := 0; i < 20; i++ {
		u, err = c.Update(0)
		if err != nil {
			t.Fatalf("Update %d: %v", i, err)
		}
	}
	if !near(u, 5) {
		t.Fatalf("u = %v, want 5 (integral should saturate at the clamp)", u)
	}
	if !near(c.Integration(), 5) {
		t.Fatalf("stored integration = %v, want 5 (clamp should apply to the accumulator, not just the reported term)", c.Integration())
	}
}

func TestIWindupAsymmetric(t *testing.T) {
	w, err := NewIWindup(-2, 5)
	if err != nil {
		t.Fatalf("NewIWindup: %v", err)
	}
	c, err := NewPIDPlus(0, 1, 0, []Modifier{w}, WithDefaultDt(1))
	if err != nil {
		t.Fatalf("NewPIDPlus: %v", err)
	}
	// negative error drives the integral down; it should clamp at -2, not -5
	if err := c.SetSetpoint(-10); err != nil {
		t.Fatalf("SetSetpoint: %v", err)
	}
	var u float64
	for i := 0; i < 20; i++ {
		u, _ = c.Update(0)
	}
	if !near(u, -2) {
		t.Fatalf("u = %v, want -2", u)
	}
}

func TestIWindupSortsInvertedRange(t *testing.T) {
	w, err := NewIWindup(5, -5)
	if err != nil {
		t.Fatalf("NewIWindup: %v", err)
	}
	c, err := NewPIDPlus(0, 1, 0, []Modifier{w}, WithDefaultDt(1))
	if err != nil {
		t.Fatalf("NewPIDPlus: %v", err)
	}
	if err := c.SetSetpoint(10); err != nil {
		t.Fatalf("SetSetpoint: %v", err)
	}
	var u float64
	for i := 0; i < 20; i++ {
		u, _ = c.Update(0)
	}
	if !near(u, 5) {
		t.Fatalf("u = %v, want 5 (an inverted (5, -5) range should be sorted to [-5, 5], not rejected)", u)
	}
}

func TestIWindupIsShareableAcrossControllers(t *testing.T) {
	w, err := NewIWindup(5)
	if err != nil {
		t.Fatalf("NewIWindup: %v", err)
	}
	c1, err := NewPIDPlus(0, 1, 0, []Modifier{w}, WithDefaultDt(1))
	if err != nil {
		t.Fatalf("NewPIDPlus c1: %v", err)
	}
	c2, err := NewPIDPlus(0, 1, 0, []Modifier{w}, WithDefaultDt(1))
	if err != nil {
		t.Fatalf("NewPIDPlus c2: %v (IWindup is documented Stateless and must be shareable)", err)
	}

	if err := c1.SetSetpoint(10); err != nil {
		t.Fatalf("SetSetpoint c1: %v", err)
	}
	if err := c2.SetSetpoint(-10); err != nil {
		t.Fatalf("SetSetpoint c2: %v", err)
	}

	var u1, u2 float64
	for i := 0; i < 20; i++ {
		u1, _ = c1.Update(0)
		u2, _ = c2.Update(0)
	}
	// each controller's own integral clamps independently, proving the
	// shared IWindup instance writes back through ev.PID().integration
	// rather than a single cached controller.
	if !near(u1, 5) {
		t.Fatalf("u1 = %v, want 5", u1)
	}
	if !near(u2, -5) {
		t.Fatalf("u2 = %v, want -5", u2)
	}
	if !near(c1.Integration(), 5) {
		t.Fatalf("c1 integration = %v, want 5", c1.Integration())
	}
	if !near(c2.Integration(), -5) {
		t.Fatalf("c2 integration = %v, want -5", c2.Integration())
	}
}

func TestIWindupRejectsWrongArgCount(t *testing.T) {
	if _, err := NewIWindup(1, 2, 3); err == nil {
		t.Fatalf("expected an error for more than 2 arguments")
	}
	if _, err := NewIWindup(); err == nil {
		t.Fatalf("expected an error for 0 arguments")
	}
}
