package capabilities

import "testing"

func TestFixedTemperature(t *testing.T) {
	c := FixedTemperature{Value: 1.0}
	if !c.Validate(1.0) {
		t.Error("expected 1.0 to validate")
	}
	if c.Validate(0.5) {
		t.Error("expected 0.5 to be invalid")
	}
	if c.Clamp(0.2) != 1.0 {
		t.Errorf("Clamp(0.2) = %v, want 1.0", c.Clamp(0.2))
	}
}

func TestRangeTemperatureDefaultsToMidpoint(t *testing.T) {
	c := NewRangeTemperature(0.0, 2.0, 0)
	if c.Default() != 1.0 {
		t.Errorf("Default() = %v, want 1.0", c.Default())
	}
	if c.Clamp(5.0) != 2.0 {
		t.Errorf("Clamp(5.0) = %v, want 2.0", c.Clamp(5.0))
	}
	if c.Clamp(-1.0) != 0.0 {
		t.Errorf("Clamp(-1.0) = %v, want 0.0", c.Clamp(-1.0))
	}
}

func TestDiscreteTemperature(t *testing.T) {
	c := NewDiscreteTemperature([]float64{0.0, 0.3, 0.7, 1.0, 1.5, 2.0}, 0)
	if c.Default() != 1.0 {
		t.Errorf("Default() = %v, want 1.0 (middle element)", c.Default())
	}
	if !c.Validate(1.5) {
		t.Error("expected 1.5 to validate")
	}
	if c.Validate(0.9) {
		t.Error("expected 0.9 to be invalid")
	}
	if got := c.Clamp(0.85); got != 0.7 && got != 1.0 {
		t.Errorf("Clamp(0.85) = %v, want nearest of 0.7 or 1.0", got)
	}
}

func TestNewTemperatureConstraintDefaults(t *testing.T) {
	if got := NewTemperatureConstraint("fixed").Default(); got != 1.0 {
		t.Errorf("fixed default = %v, want 1.0", got)
	}
	if got := NewTemperatureConstraint("discrete").Default(); got != 0.7 {
		t.Errorf("discrete default = %v, want 0.7", got)
	}
	if got := NewTemperatureConstraint("range").Default(); got != 0.7 {
		t.Errorf("range default = %v, want 0.7", got)
	}
}
