package scoring

import "testing"

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"bare object", `{"score": 85}`, `{"score": 85}`, true},
		{"surrounding prose", `Here is my verdict: {"score": 85, "feedback": "good"} Hope that helps!`, `{"score": 85, "feedback": "good"}`, true},
		{"nested braces", `x {"a": {"b": 1}} y`, `{"a": {"b": 1}}`, true},
		{"brace inside string", `{"feedback": "use {} literals"}`, `{"feedback": "use {} literals"}`, true},
		{"escaped quote inside string", `{"feedback": "she said \"hi {\" loudly"}`, `{"feedback": "she said \"hi {\" loudly"}`, true},
		{"first of two objects", `{"a": 1} {"b": 2}`, `{"a": 1}`, true},
		{"unbalanced", `{"a": 1`, "", false},
		{"no object", "plain text only", "", false},
		{"empty", "", "", false},
		{"stray closing brace then object", `} {"a": 1}`, `{"a": 1}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("span = %q, want %q", got, tt.want)
			}
		})
	}
}
