package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPackageRefString(t *testing.T) {
	assert.Equal(t, "http", PackageRef{Name: "http"}.String())
	assert.Equal(t, "http >= 1.0.0", PackageRef{Name: "http", VersionConstraint: ">= 1.0.0"}.String())
}

func TestPackageVersionMatchVersion(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		constraint string
		want       bool
	}{
		{"exact match", "1.2.3", "= 1.2.3", true},
		{"range match", "1.2.3", ">= 1.0.0", true},
		{"range miss", "0.9.0", ">= 1.0.0", false},
		{"invalid constraint", "1.2.3", "not-a-constraint", false},
		{"invalid version", "not-a-version", ">= 1.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pv := &PackageVersion{Name: "http", Version: tt.version}
			assert.Equal(t, tt.want, pv.MatchVersion(tt.constraint))
		})
	}
}

func TestPackageVersionIsPrerelease(t *testing.T) {
	assert.False(t, (&PackageVersion{Version: "1.2.3"}).IsPrerelease())
	assert.True(t, (&PackageVersion{Version: "1.3.0-beta.2"}).IsPrerelease())
	assert.False(t, (&PackageVersion{Version: "garbage"}).IsPrerelease())
}

func TestReportSucceeded(t *testing.T) {
	report := &Report{
		Steps: []StepResult{
			{Name: "pub get", ExitCode: 0, Duration: time.Second},
			{Name: "analyze", ExitCode: 0},
		},
	}
	assert.True(t, report.Succeeded())

	report.Steps = append(report.Steps, StepResult{Name: "analyze", ExitCode: 3})
	assert.False(t, report.Succeeded())
}
