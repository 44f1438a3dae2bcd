package plan

import (
	"strings"
	"testing"

	"github.com/calgal7-del/1040-paydays/pkg/core/projection"
)

func samplePayload() SharePayload {
	return SharePayload{
		Name: "College fund",
		FormValues: projection.FormValues{
			CurrentAge:            "30",
			RetirementAge:         "65",
			StartingAmount:        "1000",
			ContributionPerPayday: "250",
			AnnualRatePct:         "7",
			Frequency:             "biweekly",
			WindfallAmount:        "5000",
			WindfallTiming:        "year",
			WindfallYear:          "3",
		},
	}
}

func TestShareToken_RoundTrip(t *testing.T) {
	tok, err := EncodeShareToken(samplePayload())
	if err != nil {
		t.Fatalf("EncodeShareToken: %v", err)
	}
	// URL-safe and unpadded: usable as a bare path segment.
	if strings.ContainsAny(tok, "+/=") {
		t.Errorf("token %q contains non-URL-safe characters", tok)
	}

	got, err := DecodeShareToken(tok)
	if err != nil {
		t.Fatalf("DecodeShareToken: %v", err)
	}
	if got != samplePayload() {
		t.Errorf("round trip changed payload:\n got %+v\nwant %+v", got, samplePayload())
	}
}

func TestDecodeShareToken_ToleratesPaddingAndSpace(t *testing.T) {
	tok, err := EncodeShareToken(samplePayload())
	if err != nil {
		t.Fatalf("EncodeShareToken: %v", err)
	}
	got, err := DecodeShareToken("  " + tok + "==\n")
	if err != nil {
		t.Fatalf("DecodeShareToken with padding: %v", err)
	}
	if got.Name != "College fund" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestDecodeShareToken_Rejects(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"!!!not-base64!!!",
		strings.Repeat("A", 9000), // over the size cap
	}
	for _, c := range cases {
		if _, err := DecodeShareToken(c); err == nil {
			t.Errorf("DecodeShareToken(%.20q) succeeded, want error", c)
		}
	}
}

func TestDecodeShareToken_GarbagePayload(t *testing.T) {
	// Valid base64 wrapping bytes no parser tier accepts.
	if _, err := DecodeShareToken("AAAA"); err == nil {
		t.Error("expected an error for a non-plan payload")
	}
}
