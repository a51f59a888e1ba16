package pagination

import "testing"

func TestClampPageSize(t *testing.T) {
	cfg := PageSizeConfig{Default: 20, Max: 50}
	tests := []struct {
		in   int32
		want int
	}{
		{0, 20},
		{-3, 20},
		{10, 10},
		{500, 50},
	}
	for _, tt := range tests {
		if got := ClampPageSize(tt.in, cfg); got != tt.want {
			t.Errorf("ClampPageSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if got := ClampPageSize(0, PageSizeConfig{}); got != 1 {
		t.Errorf("zero config = %d, want 1", got)
	}
}

func TestOffsetToken(t *testing.T) {
	if EncodeOffsetToken(0) != "" {
		t.Fatal("expected empty token for offset 0")
	}
	token := EncodeOffsetToken(40)
	got, err := DecodeOffsetToken(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != 40 {
		t.Fatalf("offset = %d, want 40", got)
	}
	if got, err := DecodeOffsetToken(""); err != nil || got != 0 {
		t.Fatalf("empty token = %d, %v", got, err)
	}
	// "LTE" decodes to "-1".
	for _, bad := range []string{"!!", "LTE"} {
		if _, err := DecodeOffsetToken(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
