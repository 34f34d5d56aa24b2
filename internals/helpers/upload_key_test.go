package helper

import "testing"

func TestGenerateUploadKey(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		key := GenerateUploadKey()
		if len(key) != UploadKeyLength {
			t.Fatalf("key length = %d, want %d", len(key), UploadKeyLength)
		}
		if !IsUploadKey(key) {
			t.Fatalf("generated key fails its own validator: %q", key)
		}
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate key generated: %q", key)
		}
		seen[key] = struct{}{}
	}
}

func TestIsUploadKey(t *testing.T) {
	cases := []struct {
		name string
		key  string
		want bool
	}{
		{"valid", "aB3dEf6hIj9lMn0pQr2tUv4xYz5AbC7d", true},
		{"too short", "abc", false},
		{"too long", "aB3dEf6hIj9lMn0pQr2tUv4xYz5AbC7dX", false},
		{"punctuation", "aB3dEf6hIj9lMn0pQr2tUv4xYz5AbC7!", false},
		{"thai char", "aB3dEf6hIj9lMn0pQr2tUv4xYz5AbCก", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUploadKey(tc.key); got != tc.want {
				t.Errorf("IsUploadKey(%q) = %v, want %v", tc.key, got, tc.want)
			}
		})
	}
}
