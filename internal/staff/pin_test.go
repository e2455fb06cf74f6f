package staff

import "testing"

func TestHashPINDeterministic(t *testing.T) {
	h1 := HashPIN("1234")
	h2 := HashPIN("1234")
	if h1 != h2 {
		t.Errorf("hash not deterministic: %q vs %q", h1, h2)
	}

	// SHA-256 hex digest of "1234".
	want := "03ac674216f3e15c761ee1a5e255f067953623c8b388b4459e13f978d7c846f4"
	if h1 != want {
		t.Errorf("HashPIN(1234) = %q, want %q", h1, want)
	}
}

func TestVerifyPIN(t *testing.T) {
	hash := HashPIN("4821")

	if !VerifyPIN("4821", hash) {
		t.Error("correct pin rejected")
	}
	if VerifyPIN("4822", hash) {
		t.Error("wrong pin accepted")
	}
}

func TestValidatePIN(t *testing.T) {
	tests := []struct {
		pin     string
		wantErr bool
	}{
		{"1234", false},
		{"0000", false},
		{"123", true},
		{"12345", true},
		{"12a4", true},
		{"", true},
		{" 1234", true},
	}

	for _, tt := range tests {
		t.Run(tt.pin, func(t *testing.T) {
			err := ValidatePIN(tt.pin)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePIN(%q) error = %v, wantErr %v", tt.pin, err, tt.wantErr)
			}
		})
	}
}

func TestStaffValidate(t *testing.T) {
	valid := Staff{FirstName: "Sam", LastName: "Ortiz", HourlyWage: 18.5}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid staff rejected: %v", err)
	}

	tests := []struct {
		name string
		s    Staff
	}{
		{"empty first name", Staff{LastName: "Ortiz"}},
		{"empty last name", Staff{FirstName: "Sam"}},
		{"negative wage", Staff{FirstName: "Sam", LastName: "Ortiz", HourlyWage: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.s.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
