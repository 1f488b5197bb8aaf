package derive

import (
	"regexp"
	"testing"
)

const day19000 = int64(19000 * 86400)

func TestSubdomain_GoldenValue(t *testing.T) {
	// Pinned regression vector: HMAC-SHA256("s3cr3t", "u1example.com19000"),
	// first 32 hex chars.
	got := Subdomain("u1", "s3cr3t", "example.com", day19000)
	want := "35594b1716050b55d8fe0875d8871eb5"
	if got != want {
		t.Fatalf("golden mismatch: got %q want %q", got, want)
	}
}

func TestSubdomain_StableWithinDay(t *testing.T) {
	base := Subdomain("u1", "s3cr3t", "example.com", day19000)

	for _, offset := range []int64{0, 1, 3600, 43200, 86399} {
		got := Subdomain("u1", "s3cr3t", "example.com", day19000+offset)
		if got != base {
			t.Fatalf("value changed within one day at +%ds: got %q want %q", offset, got, base)
		}
	}
}

func TestSubdomain_RotatesAcrossDayBoundary(t *testing.T) {
	today := Subdomain("u1", "s3cr3t", "example.com", day19000)
	tomorrow := Subdomain("u1", "s3cr3t", "example.com", day19000+86400)

	if today == tomorrow {
		t.Fatalf("value did not rotate across day boundary: %q", today)
	}
	if tomorrow != "81dc997fb7c1cfdb6968f73a7c65bdd3" {
		t.Fatalf("day 19001 golden mismatch: got %q", tomorrow)
	}
}

func TestSubdomain_ScopedPerDomain(t *testing.T) {
	a := Subdomain("u1", "s3cr3t", "shop.example", day19000)
	b := Subdomain("u1", "s3cr3t", "news.example", day19000)
	if a == b {
		t.Fatalf("different domains produced the same value: %q", a)
	}
}

func TestSubdomain_ScopedPerUserAndSecret(t *testing.T) {
	base := Subdomain("u1", "s3cr3t", "example.com", day19000)
	if got := Subdomain("u2", "s3cr3t", "example.com", day19000); got == base {
		t.Fatalf("different users produced the same value: %q", got)
	}
	if got := Subdomain("u1", "other", "example.com", day19000); got == base {
		t.Fatalf("different secrets produced the same value: %q", got)
	}
}

func TestSubdomain_Shape(t *testing.T) {
	shape := regexp.MustCompile(`^[0-9a-f]{32}$`)

	inputs := []struct {
		user, secret, domain string
		now                  int64
	}{
		{"u1", "s3cr3t", "example.com", day19000},
		{"alice", "k", "sub.domain.example", 0},
		{"bob", "longer-secret-material", "xn--mnchen-3ya.de", 1893456000},
	}
	for _, in := range inputs {
		got := Subdomain(in.user, in.secret, in.domain, in.now)
		if !shape.MatchString(got) {
			t.Fatalf("Subdomain(%q,%q,%q,%d) = %q, not 32 lowercase hex chars",
				in.user, in.secret, in.domain, in.now, got)
		}
	}
}
