package session

import "testing"

func TestQueryParamReadsStandardQuery(t *testing.T) {
	got := QueryParam("https://app.example.com/student-signup?loginEmail=a%40b.com", "loginEmail")
	if got != "a@b.com" {
		t.Fatalf("expected a@b.com, got %q", got)
	}
}

func TestQueryParamFallsBackToFragmentQuery(t *testing.T) {
	got := QueryParam("https://app.example.com/#/student-signup?loginEmail=a%40b.com&oobCode=x", "loginEmail")
	if got != "a@b.com" {
		t.Fatalf("expected a@b.com, got %q", got)
	}
}

func TestQueryParamPrefersStandardQuery(t *testing.T) {
	got := QueryParam("https://app.example.com/?loginEmail=first%40b.com#/x?loginEmail=second%40b.com", "loginEmail")
	if got != "first@b.com" {
		t.Fatalf("expected first@b.com, got %q", got)
	}
}

func TestQueryParamMissing(t *testing.T) {
	if got := QueryParam("https://app.example.com/", "loginEmail"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestReconstructLink(t *testing.T) {
	cases := []struct {
		name     string
		rawURL   string
		expected string
	}{
		{
			name:     "fragment carries handshake",
			rawURL:   "https://app.example.com/#/student-signup?apiKey=k&oobCode=abc",
			expected: "https://app.example.com/?apiKey=k&oobCode=abc",
		},
		{
			name:     "missing apiKey",
			rawURL:   "https://app.example.com/#/student-signup?oobCode=abc",
			expected: "",
		},
		{
			name:     "missing oobCode",
			rawURL:   "https://app.example.com/#/student-signup?apiKey=k",
			expected: "",
		},
		{
			name:     "no fragment query",
			rawURL:   "https://app.example.com/#/student-signup",
			expected: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := reconstructLink(tc.rawURL, "https://app.example.com")
			if got != tc.expected {
				t.Fatalf("reconstructLink(%q) = %q, expected %q", tc.rawURL, got, tc.expected)
			}
		})
	}
}
