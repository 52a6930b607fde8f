package otel

import (
	"strings"
	"testing"
)

func TestSettingsActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  settings
		want bool
	}{
		{name: "empty endpoint", cfg: settings{}, want: false},
		{name: "endpoint set", cfg: settings{Endpoint: "http://collector:4318"}, want: true},
		{name: "explicitly disabled", cfg: settings{Endpoint: "http://collector:4318", Enabled: "FALSE"}, want: false},
		{name: "blank endpoint", cfg: settings{Endpoint: "  "}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.cfg.active(); got != tt.want {
				t.Fatalf("active() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestSettingsSampler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ratio float64
		want  string
	}{
		{ratio: 1, want: "AlwaysOnSampler"},
		{ratio: 2, want: "AlwaysOnSampler"},
		{ratio: 0, want: "AlwaysOffSampler"},
		{ratio: 0.25, want: "ParentBased"},
	}
	for _, tt := range tests {
		got := settings{SampleRatio: tt.ratio}.sampler().Description()
		if !strings.HasPrefix(got, tt.want) {
			t.Fatalf("sampler(%v).Description() = %q, want prefix %q", tt.ratio, got, tt.want)
		}
	}
}
