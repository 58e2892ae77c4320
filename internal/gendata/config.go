// Package gendata generates synthetic resume datasets for local runs and tests.
package gendata

import "time"

// Config holds configuration for a generation run.
type Config struct {
	Rows      int           // Number of resumes to generate
	Output    string        // Output path; .xlsx writes a workbook, anything else CSV
	Seed      uint64        // PRNG seed; equal seeds give equal datasets
	Localized bool          // Write the localized region header
	VerifyURL string        // Optional dashboard base URL to check the output against
	Timeout   time.Duration // HTTP timeout for verification
}

// Stats summarizes a generation run.
type Stats struct {
	Rows           int
	MissingRegions int
	MissingSalary  int
	Regions        int
	StartTime      time.Time
	Duration       time.Duration
}
