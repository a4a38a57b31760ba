package immich

import "testing"

func TestIsValidUUID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{
			name:  "canonical v4",
			input: "c3f7a1d2-4b6e-4f5a-9c8d-1e2f3a4b5c6d",
			valid: true,
		},
		{
			name:  "canonical v1",
			input: "f8b4e5a0-7f5c-11ee-b962-0242ac120002",
			valid: true,
		},
		{
			name:  "nil uuid",
			input: "00000000-0000-0000-0000-000000000000",
			valid: true,
		},
		{
			name:  "empty string",
			input: "",
			valid: false,
		},
		{
			name:  "uppercase hex",
			input: "C3F7A1D2-4B6E-4F5A-9C8D-1E2F3A4B5C6D",
			valid: false,
		},
		{
			name:  "mixed case hex",
			input: "c3f7a1d2-4b6e-4F5a-9c8d-1e2f3a4b5c6d",
			valid: false,
		},
		{
			name:  "missing dashes",
			input: "c3f7a1d24b6e4f5a9c8d1e2f3a4b5c6d",
			valid: false,
		},
		{
			name:  "braced form",
			input: "{c3f7a1d2-4b6e-4f5a-9c8d-1e2f3a4b5c6d}",
			valid: false,
		},
		{
			name:  "urn form",
			input: "urn:uuid:c3f7a1d2-4b6e-4f5a-9c8d-1e2f3a4b5c6d",
			valid: false,
		},
		{
			name:  "non-hex characters",
			input: "c3f7a1d2-4b6e-4f5a-9c8d-1e2f3a4b5czz",
			valid: false,
		},
		{
			name:  "too short",
			input: "c3f7a1d2-4b6e-4f5a-9c8d",
			valid: false,
		},
		{
			name:  "too long",
			input: "c3f7a1d2-4b6e-4f5a-9c8d-1e2f3a4b5c6d7e",
			valid: false,
		},
		{
			name:  "dashes in wrong places",
			input: "c3f7a1d24-b6e-4f5a-9c8d-1e2f3a4b5c6d",
			valid: false,
		},
		{
			name:  "whitespace around uuid",
			input: " c3f7a1d2-4b6e-4f5a-9c8d-1e2f3a4b5c6d",
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidUUID(tt.input); got != tt.valid {
				t.Errorf("IsValidUUID(%q) = %v, expected %v", tt.input, got, tt.valid)
			}
		})
	}
}
