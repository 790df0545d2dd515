package classify

import "testing"

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	tests := []struct {
		name string
		text string
		want ContentType
	}{
		{
			name: "empty text",
			text: "",
			want: General,
		},
		{
			name: "plain prose",
			text: "Thank you for purchasing this product. We hope you enjoy it for many years.",
			want: General,
		},
		{
			name: "numbered procedure",
			text: "1. Attach the bracket to the wall.\n2. Insert the anchor bolts.\n3. Tighten until snug.",
			want: Procedure,
		},
		{
			name: "warning threshold met",
			text: "WARNING: Risk of electric shock. Do not open the rear panel.",
			want: Warning,
		},
		{
			name: "single warning word alone is not enough",
			text: "The caution label is printed on the side of the box near the handle.",
			want: General,
		},
		{
			name: "specifications table",
			text: "Voltage: 120 V. Wattage: 1500 W. Clearance: 30 cm on all sides. Capacity: 5 kg.",
			want: Specs,
		},
		{
			name: "troubleshooting entry",
			text: "Problem: the unit is not working and the light keeps blinking. Check that the plug is seated. Verify the breaker.",
			want: Troubleshooting,
		},
		{
			name: "warning dominates mixed procedural text",
			text: "DANGER: never touch the heating element. Do not insert tools. Risk of serious injury. 1. Unplug the unit before cleaning.",
			want: Warning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.text); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHigherPriority(t *testing.T) {
	tests := []struct {
		a, b, want ContentType
	}{
		{Warning, Procedure, Warning},
		{Procedure, Warning, Warning},
		{General, Specs, Specs},
		{Troubleshooting, Specs, Troubleshooting},
		{General, General, General},
	}
	for _, tt := range tests {
		if got := HigherPriority(tt.a, tt.b); got != tt.want {
			t.Errorf("HigherPriority(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestWarningThresholdConfigurable(t *testing.T) {
	strict := NewClassifier(Config{WarningThreshold: 1})
	text := "The caution label is printed on the side of the box near the handle."
	if got := strict.Classify(text); got != Warning {
		t.Errorf("threshold 1: Classify() = %s, want WARNING", got)
	}
}
