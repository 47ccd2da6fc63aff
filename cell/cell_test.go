package cell

import "testing"

func TestValidateRejectsNoRoot(t *testing.T) {
	c := &Cell{
		Compartments: []Compartment{
			{ParentLocal: 1, Length: 1, Radius: 1, Capacitance: 1},
			{ParentLocal: 0, Length: 1, Radius: 1, Capacitance: 1},
		},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error: cycle with no root")
	}
}

func TestValidateAcceptsChain(t *testing.T) {
	c := &Cell{
		Compartments: []Compartment{
			{ParentLocal: 0, Length: 1, Radius: 1, Capacitance: 1},
			{ParentLocal: 0, Length: 1, Radius: 1, Capacitance: 1},
			{ParentLocal: 1, Length: 1, Radius: 1, Capacitance: 1},
		},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.RootIndex() != 0 {
		t.Fatalf("expected root index 0, got %d", c.RootIndex())
	}
}

func TestValidateRejectsBadGeometry(t *testing.T) {
	c := &Cell{
		Compartments: []Compartment{
			{ParentLocal: 0, Length: 0, Radius: 1, Capacitance: 1},
		},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error: non-positive length")
	}
}

func TestSingleCompartmentSoma(t *testing.T) {
	c := SingleCompartmentSoma(5, 10, 20, 1, -65)
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.NumCompartments() != 1 || c.RootIndex() != 0 {
		t.Fatalf("unexpected soma shape: %+v", c)
	}
}
