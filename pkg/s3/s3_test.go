package s3

import (
	"testing"

	"github.com/google/uuid"
)

func TestStudyKey(t *testing.T) {
	clinic := uuid.MustParse("0190a0a0-0000-7000-8000-000000000001")
	patient := uuid.MustParse("0190a0a0-0000-7000-8000-000000000002")
	study := uuid.MustParse("0190a0a0-0000-7000-8000-000000000003")

	tests := []struct {
		file string
		want string
	}{
		{"panoramica.JPG", "studies/" + clinic.String() + "/" + patient.String() + "/" + study.String() + ".jpg"},
		{"informe", "studies/" + clinic.String() + "/" + patient.String() + "/" + study.String()},
	}
	for _, tt := range tests {
		if got := StudyKey(clinic, patient, study, tt.file); got != tt.want {
			t.Errorf("StudyKey(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}
