package job_test

import (
	"testing"

	"upscaler/internal/job"
)

func validSpec() job.Spec {
	return job.Spec{
		Input:  "in.png",
		Output: "out.png",
		Scale:  4,
		Model:  job.ModelGeneral,
		GPUID:  -1,
		Suffix: job.DefaultSuffix,
		Format: job.FormatAuto,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validSpec().Validate(); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*job.Spec)
	}{
		{"scale 3", func(s *job.Spec) { s.Scale = 3 }},
		{"unknown model", func(s *job.Spec) { s.Model = "photo" }},
		{"negative tile", func(s *job.Spec) { s.Tile = -1 }},
		{"unknown format", func(s *job.Spec) { s.Format = "webp" }},
		{"missing input", func(s *job.Spec) { s.Input = "" }},
		{"missing output", func(s *job.Spec) { s.Output = " " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := validSpec()
			tc.mutate(&spec)
			if err := spec.Validate(); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestReportCounts(t *testing.T) {
	var report job.Report
	report.RecordSuccess()
	report.RecordFailure("bad.png", nil)
	report.RecordSuccess()

	if report.Attempted != 3 || report.Succeeded != 2 || report.Failed != 1 {
		t.Fatalf("unexpected counts: %+v", report)
	}
	if len(report.Failures) != 1 || report.Failures[0].Source != "bad.png" {
		t.Fatalf("unexpected failures: %+v", report.Failures)
	}
}
