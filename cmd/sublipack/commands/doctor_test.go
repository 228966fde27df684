package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sublipack/sublipack/internal/doctor"
)

func TestValidateDoctorFlags(t *testing.T) {
	origJSON, origQuiet, origVerbose := doctorJSON, doctorQuiet, doctorVerbose
	defer func() {
		doctorJSON, doctorQuiet, doctorVerbose = origJSON, origQuiet, origVerbose
	}()

	tests := []struct {
		name    string
		json    bool
		quiet   bool
		verbose bool
		wantErr bool
	}{
		{"none", false, false, false, false},
		{"json only", true, false, false, false},
		{"quiet only", false, true, false, false},
		{"verbose only", false, false, true, false},
		{"json and quiet", true, true, false, true},
		{"quiet and verbose", false, true, true, true},
		{"all three", true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doctorJSON = tt.json
			doctorQuiet = tt.quiet
			doctorVerbose = tt.verbose

			err := validateDoctorFlags(nil, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateDoctorFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteDoctorReport(t *testing.T) {
	report := &doctor.Report{
		Timestamp: time.Now().UTC(),
		Results: []*doctor.CheckResult{
			{Name: "archiver-binary", Category: "archiver", Status: doctor.SeverityPass, Message: "found"},
		},
		Summary: doctor.Summary{Passed: 1},
	}

	path := filepath.Join(t.TempDir(), "report.json")
	if err := writeDoctorReport(path, report); err != nil {
		t.Fatalf("writeDoctorReport failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got doctor.Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if len(got.Results) != 1 || got.Results[0].Name != "archiver-binary" {
		t.Errorf("round-tripped report = %+v", got)
	}
	if got.Summary.Passed != 1 {
		t.Errorf("summary lost: %+v", got.Summary)
	}
}
