package services

import (
	"errors"
	"testing"
)

func validInput() ProductInput {
	return ProductInput{
		Name:         "Seringa Descartável 5ml",
		Manufacturer: "Descarpack",
		Cost:         "0.8",
		Date:         "2025-12-01",
		HasIPI:       true,
		IPI:          "5",
	}
}

func TestProductInput_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ProductInput)
		expectField string
	}{
		{"valid", func(in *ProductInput) {}, ""},
		{"valid without IPI", func(in *ProductInput) { in.HasIPI = false; in.IPI = "" }, ""},
		{"IPI ignored when not applicable", func(in *ProductInput) { in.HasIPI = false; in.IPI = "abc" }, ""},
		{"zero cost", func(in *ProductInput) { in.Cost = "0" }, ""},
		{"comma cost", func(in *ProductInput) { in.Cost = "0,80" }, ""},
		{"empty name", func(in *ProductInput) { in.Name = "" }, "Name"},
		{"blank name", func(in *ProductInput) { in.Name = "   " }, "Name"},
		{"empty manufacturer", func(in *ProductInput) { in.Manufacturer = "" }, "Manufacturer"},
		{"empty cost", func(in *ProductInput) { in.Cost = "" }, "Cost"},
		{"non-numeric cost", func(in *ProductInput) { in.Cost = "abc" }, "Cost"},
		{"negative cost", func(in *ProductInput) { in.Cost = "-1" }, "Cost"},
		{"empty date", func(in *ProductInput) { in.Date = "" }, "Date"},
		{"bad date", func(in *ProductInput) { in.Date = "01/12/2025" }, "Date"},
		{"IPI applicable but empty", func(in *ProductInput) { in.IPI = "" }, "IPI"},
		{"IPI applicable but non-numeric", func(in *ProductInput) { in.IPI = "x" }, "IPI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := in.Validate()
			if tt.expectField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidProduct) {
				t.Fatalf("Validate() error = %v, want ErrInvalidProduct", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if _, ok := verr.Fields[tt.expectField]; !ok {
				t.Errorf("expected field %s to fail, got %v", tt.expectField, verr.Fields)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	onlyIPI := &ValidationError{Fields: map[string]string{"IPI": "required_if"}}
	if onlyIPI.Message() != MsgMissingIPI {
		t.Errorf("Message() = %q, want %q", onlyIPI.Message(), MsgMissingIPI)
	}
	mixed := &ValidationError{Fields: map[string]string{"IPI": "amount", "Name": "required"}}
	if mixed.Message() != MsgInvalidProduct {
		t.Errorf("Message() = %q, want %q", mixed.Message(), MsgInvalidProduct)
	}
	if got := mixed.Error(); got != "invalid product: IPI (amount), Name (required)" {
		t.Errorf("Error() = %q", got)
	}
}

func TestProductInput_ToProduct(t *testing.T) {
	in := validInput()
	in.Name = "  seringa descartável 5ml "
	p, err := in.toProduct(7)
	if err != nil {
		t.Fatalf("toProduct() error = %v", err)
	}
	if p.ID != 7 {
		t.Errorf("ID = %d, want 7", p.ID)
	}
	if p.Name != "SERINGA DESCARTÁVEL 5ML" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Manufacturer != "DESCARPACK" {
		t.Errorf("Manufacturer = %q", p.Manufacturer)
	}
	if p.CostText() != "0.8" {
		t.Errorf("CostText() = %q", p.CostText())
	}
	if p.DateISO() != "2025-12-01" {
		t.Errorf("DateISO() = %q", p.DateISO())
	}
	if !p.IPI.Valid || p.IPIText() != "5" {
		t.Errorf("IPI = %v", p.IPI)
	}
}

func TestInputFromProduct_RoundTrip(t *testing.T) {
	in := validInput()
	in.HasIPI = false
	in.IPI = ""
	p, err := in.toProduct(1)
	if err != nil {
		t.Fatalf("toProduct() error = %v", err)
	}
	back := InputFromProduct(p)
	if back.HasIPI || back.IPI != "" {
		t.Errorf("expected no IPI, got HasIPI=%v IPI=%q", back.HasIPI, back.IPI)
	}
	if back.Cost != "0.8" || back.Date != "2025-12-01" {
		t.Errorf("unexpected form values %+v", back)
	}
	if p.IPIText() != IPINotApplicable {
		t.Errorf("IPIText() = %q, want N/A", p.IPIText())
	}
}
