package model

import "testing"

func TestExpandRespectsQuantity(t *testing.T) {
	specs := []CargoSpec{
		NewCargoSpec("A", 100, 100, 100, 50, 3),
		NewCargoSpec("B", 50, 50, 50, 10, 1),
	}
	boxes := Expand(specs)
	if len(boxes) != 4 {
		t.Fatalf("expected 4 boxes, got %d", len(boxes))
	}
	countA := 0
	for _, b := range boxes {
		if b.CargoSpecID == specs[0].ID {
			countA++
		}
	}
	if countA != 3 {
		t.Errorf("expected 3 boxes for spec A, got %d", countA)
	}
}

func TestOrientationsSkipsDuplicateForSquareFootprint(t *testing.T) {
	b := Box{Length: 100, Width: 100, Height: 50}
	orientations := b.Orientations()
	if len(orientations) != 1 {
		t.Errorf("expected 1 orientation for a square footprint, got %d", len(orientations))
	}
}

func TestOrientationsReturnsBothForRectangularFootprint(t *testing.T) {
	b := Box{Length: 120, Width: 80, Height: 50}
	orientations := b.Orientations()
	if len(orientations) != 2 {
		t.Fatalf("expected 2 orientations, got %d", len(orientations))
	}
	if orientations[0].L != 120 || orientations[0].W != 80 {
		t.Errorf("expected identity orientation first, got %+v", orientations[0])
	}
	if orientations[1].L != 80 || orientations[1].W != 120 {
		t.Errorf("expected swapped orientation second, got %+v", orientations[1])
	}
}

func TestFitsDoor(t *testing.T) {
	b := Box{Length: 300, Width: 200, Height: 200}
	if !b.FitsDoor(234, 228) {
		t.Errorf("expected box to fit door via length orientation")
	}
	tooTall := Box{Length: 100, Width: 100, Height: 300}
	if tooTall.FitsDoor(234, 228) {
		t.Errorf("expected too-tall box to fail the door check")
	}
}

func TestCatalogueCanonicalSpecs(t *testing.T) {
	cat := NewCatalogue()
	spec20, ok := cat.Get(Type20GP)
	if !ok {
		t.Fatal("expected 20GP to be registered")
	}
	if spec20.Length != 580 || spec20.Width != 235 || spec20.Height != 239 {
		t.Errorf("unexpected 20GP dims: %+v", spec20)
	}
	hq, _ := cat.Get(Type40HQ)
	if hq.MaxPayloadKg != 28500 {
		t.Errorf("expected 40HQ payload cap 28500, got %d", hq.MaxPayloadKg)
	}
}

func TestCatalogueAddOverride(t *testing.T) {
	cat := NewCatalogue()
	cat.Add(ContainerSpec{Type: "CUSTOM", Length: 400, Width: 200, Height: 200, DoorWidth: 200, DoorHeight: 200, MaxPayloadKg: 10000})
	spec, ok := cat.Get("CUSTOM")
	if !ok || spec.Length != 400 {
		t.Errorf("expected custom container to be registered, got %+v ok=%v", spec, ok)
	}
}

func TestPackResultFinalize(t *testing.T) {
	r := PackResult{
		Container: ContainerSpec{Length: 100, Width: 100, Height: 100, MaxPayloadKg: 1000},
		Placements: []Placement{
			{Box: Box{Weight: 40}, L: 50, W: 50, H: 50},
		},
	}
	r.Finalize()
	if r.UsedVolume != 125000 {
		t.Errorf("expected used volume 125000, got %v", r.UsedVolume)
	}
	if r.TotalWeight != 40 {
		t.Errorf("expected total weight 40, got %d", r.TotalWeight)
	}
	wantVolUtil := 125000.0 / 1000000.0
	if r.VolumeUtilization != wantVolUtil {
		t.Errorf("expected volume utilization %v, got %v", wantVolUtil, r.VolumeUtilization)
	}
}
