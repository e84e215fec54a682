package providers

import "testing"

func TestClassifyRateLimitTokenQuantity(t *testing.T) {
	if !ClassifyRateLimit(`{"error": {"message": "Tokens per minute limit exceeded"}}`) {
		t.Error("expected token-quantity phrasing to classify as token quantity")
	}
}

func TestClassifyRateLimitRequestRate(t *testing.T) {
	if ClassifyRateLimit(`{"error": {"message": "Too many requests, RPM limit exceeded"}}`) {
		t.Error("expected request-rate phrasing to classify as non-token-quantity")
	}
}

func TestClassifyRateLimitMalformedDefaultsToRetryable(t *testing.T) {
	if ClassifyRateLimit("not json at all") {
		t.Error("expected malformed body to default to retryable (non-token-quantity)")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Classification
	}{
		{"auth", &AuthError{Provider: "p"}, Fatal},
		{"policy denied", &PolicyError{Provider: "p", Model: "m"}, Fatal},
		{"bad request", &ProviderError{Provider: "p", StatusCode: 400}, Fatal},
		{"server error", &ProviderError{Provider: "p", StatusCode: 503}, Retryable},
		{"token rate limit", &RateLimitError{Provider: "p", TokenQuantity: true}, Fatal},
		{"request rate limit", &RateLimitError{Provider: "p", TokenQuantity: false}, Retryable},
		{"timeout", &TimeoutError{Provider: "p"}, Retryable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.err); got != tc.want {
				t.Errorf("Classify(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
