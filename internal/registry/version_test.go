package registry

import "testing"

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name      string
		installed string
		available string
		expected  int
		wantErr   bool
	}{
		{"older patch", "1.0.0", "1.0.1", -1, false},
		{"older minor", "1.0.0", "1.1.0", -1, false},
		{"older major", "1.0.0", "2.0.0", -1, false},
		{"equal", "1.2.3", "1.2.3", 0, false},
		{"newer", "1.1.0", "1.0.0", 1, false},
		{"v prefix", "v1.0.0", "1.0.1", -1, false},
		{"prerelease less than release", "1.0.0-beta", "1.0.0", -1, false},
		{"invalid installed", "notaversion", "1.0.0", 0, true},
		{"invalid available", "1.0.0", "notaversion", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CompareVersions(tt.installed, tt.available)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.installed, tt.available, result, tt.expected)
			}
		})
	}
}

func TestIsOutOfDate(t *testing.T) {
	tests := []struct {
		name      string
		installed string
		available string
		want      bool
		wantErr   bool
	}{
		{"older", "1.0.0", "1.2.0", true, false},
		{"same", "1.2.0", "1.2.0", false, false},
		{"newer than registry", "2.0.0", "1.2.0", false, false},
		{"unparseable installed", "custom-build", "1.2.0", true, false},
		{"empty installed", "", "1.2.0", true, false},
		{"unparseable available", "1.0.0", "latest", false, true},
		{"v prefix", "v1.2.0", "1.2.0", false, false},
		{"prerelease of available", "1.2.0-rc.1", "v1.2.0", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsOutOfDate(tt.installed, tt.available)
			if (err != nil) != tt.wantErr {
				t.Fatalf("IsOutOfDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("IsOutOfDate(%q, %q) = %v, want %v", tt.installed, tt.available, got, tt.want)
			}
		})
	}
}
