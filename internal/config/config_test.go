package config

import "testing"

func TestResolveModel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"pro", "gemini-3-pro-preview"},
		{"flash", "gemini-2.0-flash"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, c := range cases {
		if got := ResolveModel(c.in); got != c.want {
			t.Errorf("ResolveModel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	if _, err := APIKey(); err == nil {
		t.Error("APIKey with no env vars expected error")
	}

	t.Setenv("GOOGLE_API_KEY", "fallback-key")
	key, err := APIKey()
	if err != nil {
		t.Fatalf("APIKey: %v", err)
	}
	if key != "fallback-key" {
		t.Errorf("key = %q, want fallback-key", key)
	}

	t.Setenv("GEMINI_API_KEY", "primary-key")
	key, err = APIKey()
	if err != nil {
		t.Fatalf("APIKey: %v", err)
	}
	if key != "primary-key" {
		t.Errorf("key = %q, want primary-key (GEMINI_API_KEY wins)", key)
	}
}
