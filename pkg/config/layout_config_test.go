package config

import "testing"

// TestWorldToScreen 测试俯视投影
func TestWorldToScreen(t *testing.T) {
	tests := []struct {
		name  string
		x, z  float64
		wantX float64
		wantY float64
	}{
		{"世界原点", 0, 0, ProjectionOriginX, ProjectionOriginY},
		{"右前方", 10, -10, ProjectionOriginX + 10*ProjectionScale, ProjectionOriginY - 10*ProjectionScale},
		{"左后方", -2, 3, ProjectionOriginX - 2*ProjectionScale, ProjectionOriginY + 3*ProjectionScale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := WorldToScreen(tt.x, tt.z)
			if gotX != tt.wantX || gotY != tt.wantY {
				t.Errorf("WorldToScreen(%.1f, %.1f) = (%.1f, %.1f), want (%.1f, %.1f)",
					tt.x, tt.z, gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}
