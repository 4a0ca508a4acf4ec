package main

import "testing"

func TestParsePRURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		repo    string
		number  int
		baseURL string
		wantErr bool
	}{
		{
			name:   "standard github",
			url:    "https://github.com/owner/repo/pull/123",
			repo:   "owner/repo",
			number: 123,
		},
		{
			name:   "plural pulls path",
			url:    "https://github.com/owner/repo/pulls/7",
			repo:   "owner/repo",
			number: 7,
		},
		{
			name:    "enterprise github",
			url:     "https://code.github.example.com/team/service/pull/55",
			repo:    "team/service",
			number:  55,
			baseURL: "https://code.github.example.com/api/v3",
		},
		{
			name:   "no scheme",
			url:    "github.com/owner/repo/pull/9",
			repo:   "owner/repo",
			number: 9,
		},
		{
			name:    "not a pr url",
			url:     "https://github.com/owner/repo/issues/5",
			wantErr: true,
		},
		{
			name:    "garbage",
			url:     "not a url at all",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, number, baseURL, err := parsePRURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.url)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo != tt.repo || number != tt.number || baseURL != tt.baseURL {
				t.Errorf("got (%s, %d, %s), want (%s, %d, %s)",
					repo, number, baseURL, tt.repo, tt.number, tt.baseURL)
			}
		})
	}
}

func TestMaskSecret(t *testing.T) {
	if got := maskSecret(""); got != "not set" {
		t.Errorf("empty secret: got %q", got)
	}
	if got := maskSecret("ab"); got != "********" {
		t.Errorf("short secret: got %q", got)
	}
	if got := maskSecret("ghp_1234abcd"); got != "********...abcd" {
		t.Errorf("long secret: got %q", got)
	}
}
