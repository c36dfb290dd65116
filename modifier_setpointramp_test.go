package pidcontrol

import "testing"

func TestSetpointRampVisibleInterpolatesSetpoint(t *testing.T) {
	ramp, err := NewSetpointRamp(4)
	if err != nil {
		t.Fatalf("NewSetpointRamp: %v", err)
	}
	c, err := NewPIDPlus(0, 0, 0, []Modifier{ramp}, WithDefaultDt(1))
	if err != nil {
		t.Fatalf("NewPIDPlus: %v", err)
	}
	if err := c.SetSetpoint(8); err != nil {
		t.Fatalf("SetSetpoint: %v", err)
	}
	if c.Setpoint() != 0 {
		t.Fatalf("Setpoint should not jump immediately, got %v", c.Setpoint())
	}

	wantAfter := []float64{2, 4, 6, 8}
	for i, want := range wantAfter {
		if _, err := c.Update(0); err != nil {
			t.Fatalf("Update %d: %v", i, err)
		}
		if !near(c.Setpoint(), want) {
			t.Fatalf("after tick %d, Setpoint() = %v, want %v", i, c.Setpoint(), want)
		}
	}

	// once fully ramped, further ticks hold at target
	c.Update(0)
	if !near(c.Setpoint(), 8) {
		t.Fatalf("Setpoint should hold at target once ramp completes, got %v", c.Setpoint())
	}
}

func TestSetpointRampHiddenLeavesSetpointAtTarget(t *testing.T) {
	ramp, err := NewSetpointRamp(2, WithHiddenRamp())
	if err != nil {
		t.Fatalf("NewSetpointRamp: %v", err)
	}
	c, err := NewPIDPlus(1, 0, 0, []Modifier{ramp}, WithDefaultDt(1))
	if err != nil {
		t.Fatalf("NewPIDPlus: %v", err)
	}
	if err := c.SetSetpoint(10); err != nil {
		t.Fatalf("SetSetpoint: %v", err)
	}
	if c.Setpoint() != 10 {
		t.Fatalf("hidden ramp should store the target immediately, got %v", c.Setpoint())
	}

	// tick 1: interpolated value should be 5 (halfway), so e = 5-0 = 5, u = Kp*e = 5
	u, err := c.Update(0)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !near(u, 5) {
		t.Fatalf("u = %v, want 5 (interpolated error, not full step)", u)
	}

	// tick 2: ramp complete, e should be full 10-0=10
	u2, _ := c.Update(0)
	if !near(u2, 10) {
		t.Fatalf("u2 = %v, want 10 once ramp completes", u2)
	}
}

func TestSetpointRampThresholdSkipsSmallChanges(t *testing.T) {
	ramp, err := NewSetpointRamp(10, WithRampThreshold(5))
	if err != nil {
		t.Fatalf("NewSetpointRamp: %v", err)
	}
	c, err := NewPIDPlus(1, 0, 0, []Modifier{ramp}, WithDefaultDt(1))
	if err != nil {
		t.Fatalf("NewPIDPlus: %v", err)
	}
	if err := c.SetSetpoint(1); err != nil {
		t.Fatalf("SetSetpoint: %v", err)
	}
	if c.Setpoint() != 1 {
		t.Fatalf("a change below threshold should apply immediately, got %v", c.Setpoint())
	}
}

func TestSetpointRampZeroSecsSnapsImmediately(t *testing.T) {
	ramp, err := NewSetpointRamp(0)
	if err != nil {
		t.Fatalf("NewSetpointRamp(0) should be allowed: %v", err)
	}
	c, err := NewPIDPlus(1, 0, 0, []Modifier{ramp}, WithDefaultDt(1))
	if err != nil {
		t.Fatalf("NewPIDPlus: %v", err)
	}
	if err := c.SetSetpoint(5); err != nil {
		t.Fatalf("SetSetpoint: %v", err)
	}
	if c.Setpoint() != 5 {
		t.Fatalf("secs=0 should snap immediately, got %v", c.Setpoint())
	}
}

func TestSetpointRampRejectsNegativeSecs(t *testing.T) {
	if _, err := NewSetpointRamp(-1); err == nil {
		t.Fatalf("expected a UsageError for a negative ramp duration")
	}
}

func TestSetpointRampSecsRejectsNegative(t *testing.T) {
	ramp, err := NewSetpointRamp(4)
	if err != nil {
		t.Fatalf("NewSetpointRamp: %v", err)
	}
	if err := ramp.Secs(-1); err == nil {
		t.Fatalf("expected Secs(-1) to return a UsageError")
	}
}
