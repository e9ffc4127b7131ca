package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"pgcetcli/pkg/contracts/domain"
)

// SampleSeatCSV is a small well-formed dataset: two courses over two years,
// with every optional column present
const SampleSeatCSV = `Year,Course,Total_Seats,Seats_Filled,Vacant_Seats,Avg_Exam_Cost,Student_Stress_Index
2022,MBA,100,90,10,2500,0.4
2022,MCA,80,72,8,2800,0.5
2023,MBA,100,95,5,2600,0.45
2023,MCA,80,76,4,2900,0.55
`

// DecliningSeatCSV shows a falling fill rate with high costs and stress
const DecliningSeatCSV = `Year,Course,Total_Seats,Seats_Filled,Avg_Exam_Cost,Student_Stress_Index
2021,M.Tech,120,110,6000,0.8
2021,M.Arch,40,35,6500,0.9
2022,M.Tech,120,60,6200,0.8
2022,M.Arch,40,10,7000,0.9
`

// Float returns a pointer to v for optional record fields
func Float(v float64) *float64 {
	return &v
}

// SeatRecord builds a record with vacant seats computed from total and filled
func SeatRecord(year int, course string, total, filled int) domain.SeatRecord {
	return domain.SeatRecord{
		Year:        year,
		Course:      course,
		TotalSeats:  total,
		SeatsFilled: filled,
		VacantSeats: total - filled,
	}
}

// WriteTempFile writes content under t.TempDir and returns the path
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
