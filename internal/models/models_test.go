package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDataSource_JSON(t *testing.T) {
	tests := []struct {
		name     string
		source   DataSource
		expected string
	}{
		{"live", SourceLive, `"live"`},
		{"synthetic", SourceSynthetic, `"synthetic"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.source)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tt.expected {
				t.Errorf("Marshal() = %s, want %s", data, tt.expected)
			}

			var decoded DataSource
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if decoded != tt.source {
				t.Errorf("Unmarshal() = %v, want %v", decoded, tt.source)
			}
		})
	}
}

func TestDataSource_RejectsUnknown(t *testing.T) {
	if _, err := json.Marshal(DataSource(7)); err == nil {
		t.Error("Marshal(DataSource(7)) expected error")
	}

	var decoded DataSource
	if err := json.Unmarshal([]byte(`"guess"`), &decoded); err == nil {
		t.Error(`Unmarshal("guess") expected error`)
	}
}

func TestParseFlightStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected FlightStatus
	}{
		{"scheduled", StatusScheduled},
		{"ACTIVE", StatusActive},
		{" landed ", StatusLanded},
		{"cancelled", StatusCancelled},
		{"canceled", StatusCancelled},
		{"incident", StatusIncident},
		{"diverted", StatusDiverted},
		{"delayed", StatusUnknown},
		{"", StatusUnknown},
	}

	for _, tt := range tests {
		if got := ParseFlightStatus(tt.input); got != tt.expected {
			t.Errorf("ParseFlightStatus(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestFlightStatusRecord_JSONOmitsMissingTimes(t *testing.T) {
	record := FlightStatusRecord{
		FlightNumber: "TK1",
		FlightDate:   "2024-03-01",
		Status:       StatusCancelled,
		IsCancelled:  true,
		Source:       SourceSynthetic,
	}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	body := string(data)
	if strings.Contains(body, "actualDeparture") {
		t.Errorf("cancelled record should not carry actual times: %s", body)
	}
	if !strings.Contains(body, `"source":"synthetic"`) {
		t.Errorf("source not encoded as text: %s", body)
	}
}
