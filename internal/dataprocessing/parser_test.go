package dataprocessing

import (
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pgcetcli/internal/shared/testutil"
	"pgcetcli/pkg/contracts/domain"
)

func TestParseSampleDataset(t *testing.T) {
	report, err := Parse(testutil.SampleSeatCSV)
	require.NoError(t, err)

	require.Len(t, report.Records, 4)
	assert.Empty(t, report.Dropped())

	first := report.Records[0]
	assert.Equal(t, 2022, first.Year)
	assert.Equal(t, "MBA", first.Course)
	assert.Equal(t, 100, first.TotalSeats)
	assert.Equal(t, 90, first.SeatsFilled)
	assert.Equal(t, 10, first.VacantSeats)
	require.NotNil(t, first.AvgExamCost)
	assert.InDelta(t, 2500.0, *first.AvgExamCost, 1e-9)
	require.NotNil(t, first.StudentStressIndex)
	assert.InDelta(t, 0.4, *first.StudentStressIndex, 1e-9)
}

func TestParseFormatErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantMissing []string
		errContains string
	}{
		{
			name:        "empty input",
			input:       "",
			errContains: "at least a header and one data row",
		},
		{
			name:        "whitespace only",
			input:       "  \n\n  ",
			errContains: "at least a header and one data row",
		},
		{
			name:        "header only",
			input:       "Year,Course,Total_Seats,Seats_Filled\n",
			errContains: "at least a header and one data row",
		},
		{
			name:        "missing filled column",
			input:       "Year,Course,Total_Seats,Vacant\n2023,MBA,100,10",
			wantMissing: []string{"seats filled"},
			errContains: "must contain",
		},
		{
			name:        "total without seat",
			input:       "Year,Course,Total,Filled\n2023,MBA,100,90",
			wantMissing: []string{"total seats"},
		},
		{
			name:        "several missing",
			input:       "Semester,Program,Capacity,Filled\n1,MBA,100,90",
			wantMissing: []string{"year", "course", "total seats"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.True(t, errors.Is(err, ErrFormat))

			var formatErr *FormatError
			require.True(t, errors.As(err, &formatErr))
			if tt.wantMissing != nil {
				assert.Equal(t, tt.wantMissing, formatErr.Missing)
			}
			if tt.errContains != "" {
				assert.Contains(t, err.Error(), tt.errContains)
			}
		})
	}
}

func TestParseColumnDiscovery(t *testing.T) {
	t.Run("column order is irrelevant", func(t *testing.T) {
		input := "Seats_Filled,COURSE NAME,Academic Year,Total Seats\n45,MBA,2023,50"
		records, err := ParseRecords(input)
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, domain.SeatRecord{
			Year:        2023,
			Course:      "MBA",
			TotalSeats:  50,
			SeatsFilled: 45,
			VacantSeats: 5,
		}, records[0])
	})

	t.Run("first match wins", func(t *testing.T) {
		input := "Year,Course,Total_Seats,Seats_Filled,Refill_Count\n2023,MBA,50,40,7"
		records, err := ParseRecords(input)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 40, records[0].SeatsFilled)
	})

	t.Run("header cells are trimmed and lowercased", func(t *testing.T) {
		input := "  YEAR , Course ,  TOTAL_SEATS, Seats_FILLED  \n2023,MBA,50,40"
		records, err := ParseRecords(input)
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("absent optional columns stay nil", func(t *testing.T) {
		records, err := ParseRecords("Year,Course,Total_Seats,Seats_Filled\n2023,MBA,50,40")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Nil(t, records[0].AvgExamCost)
		assert.Nil(t, records[0].StudentStressIndex)
	})
}

func TestParseRowHandling(t *testing.T) {
	const header = "Year,Course,Total_Seats,Seats_Filled,Vacant_Seats,Avg_Exam_Cost,Stress\n"

	tests := []struct {
		name        string
		rows        string
		wantRecords int
		wantDropped int
		check       func(t *testing.T, report *domain.ParseReport)
	}{
		{
			name:        "non numeric year drops only that row",
			rows:        "abc,MBA,100,90,10,,\n2023,MCA,80,70,10,,",
			wantRecords: 1,
			wantDropped: 1,
			check: func(t *testing.T, report *domain.ParseReport) {
				assert.Equal(t, "MCA", report.Records[0].Course)
				dropped := report.Dropped()
				assert.Equal(t, 2, dropped[0].Line)
				assert.Contains(t, dropped[0].Reason, "invalid year")
			},
		},
		{
			name:        "integer overflow drops row with range reason",
			rows:        "2023,MBA,99999999999999999999,90,10,,\n2023,MCA,80,70,10,,",
			wantRecords: 1,
			wantDropped: 1,
			check: func(t *testing.T, report *domain.ParseReport) {
				dropped := report.Dropped()
				assert.Equal(t, 2, dropped[0].Line)
				assert.Contains(t, dropped[0].Reason, "invalid total seats")
				assert.Contains(t, dropped[0].Reason, "out of range")
			},
		},
		{
			name:        "overflowing vacant falls back with range note",
			rows:        "2023,MBA,100,90,99999999999999999999,,",
			wantRecords: 1,
			check: func(t *testing.T, report *domain.ParseReport) {
				assert.Equal(t, 10, report.Records[0].VacantSeats)
				assert.Contains(t, report.Rows[0].Reason, "out of range")
			},
		},
		{
			name:        "blank lines are skipped silently",
			rows:        "2023,MBA,100,90,10,,\n\n   \n2023,MCA,80,70,10,,",
			wantRecords: 2,
			wantDropped: 0,
			check: func(t *testing.T, report *domain.ParseReport) {
				assert.Len(t, report.Rows, 2)
				assert.Equal(t, 5, report.Rows[1].Line)
			},
		},
		{
			name:        "inconsistent vacant is taken verbatim",
			rows:        "2023,MBA,100,90,50,,",
			wantRecords: 1,
			check: func(t *testing.T, report *domain.ParseReport) {
				assert.Equal(t, 50, report.Records[0].VacantSeats)
			},
		},
		{
			name:        "unparseable vacant falls back to computed value",
			rows:        "2023,MBA,100,90,n/a,,",
			wantRecords: 1,
			check: func(t *testing.T, report *domain.ParseReport) {
				assert.Equal(t, 10, report.Records[0].VacantSeats)
				assert.True(t, report.Rows[0].Kept)
				assert.Contains(t, report.Rows[0].Reason, "vacant seats")
			},
		},
		{
			name:        "non numeric optional field becomes absent",
			rows:        "2023,MBA,100,90,10,unknown,high",
			wantRecords: 1,
			check: func(t *testing.T, report *domain.ParseReport) {
				assert.Nil(t, report.Records[0].AvgExamCost)
				assert.Nil(t, report.Records[0].StudentStressIndex)
			},
		},
		{
			name:        "zero optional value is present",
			rows:        "2023,MBA,100,90,10,0,0",
			wantRecords: 1,
			check: func(t *testing.T, report *domain.ParseReport) {
				require.NotNil(t, report.Records[0].AvgExamCost)
				assert.Equal(t, 0.0, *report.Records[0].AvgExamCost)
			},
		},
		{
			name:        "short row reads missing fields as empty",
			rows:        "2023,MBA,100,90",
			wantRecords: 1,
			check: func(t *testing.T, report *domain.ParseReport) {
				record := report.Records[0]
				assert.Equal(t, 10, record.VacantSeats)
				assert.Nil(t, record.AvgExamCost)
				assert.Nil(t, record.StudentStressIndex)
			},
		},
		{
			name:        "short row missing filled is dropped",
			rows:        "2023,MBA,100",
			wantRecords: 0,
			wantDropped: 1,
		},
		{
			name:        "all rows malformed yields empty report",
			rows:        "x,MBA,100,90,10,,\ny,MCA,a,b,,,",
			wantRecords: 0,
			wantDropped: 2,
		},
		{
			name:        "course label is kept verbatim",
			rows:        "2023, M.Tech (CSE) ,100,90,10,,\n2023,m.tech (cse),50,40,10,,",
			wantRecords: 2,
			check: func(t *testing.T, report *domain.ParseReport) {
				assert.Equal(t, "M.Tech (CSE)", report.Records[0].Course)
				assert.Equal(t, "m.tech (cse)", report.Records[1].Course)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Parse(header + tt.rows)
			require.NoError(t, err)
			assert.Len(t, report.Records, tt.wantRecords)
			assert.Equal(t, tt.wantDropped, report.DroppedCount())
			if tt.check != nil {
				tt.check(t, report)
			}
		})
	}
}

func TestParseNegativeVacantPropagates(t *testing.T) {
	records, err := ParseRecords("Year,Course,Total_Seats,Seats_Filled\n2023,MBA,50,60")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, -10, records[0].VacantSeats)
}

func TestParseKeepsInputOrder(t *testing.T) {
	input := "Year,Course,Total_Seats,Seats_Filled\n2024,C,10,5\n2022,A,10,5\n2023,B,10,5"
	records, err := ParseRecords(input)
	require.NoError(t, err)

	var courses []string
	for _, r := range records {
		courses = append(courses, r.Course)
	}
	assert.Equal(t, []string{"C", "A", "B"}, courses)
}

func TestParseCarriageReturns(t *testing.T) {
	input := "Year,Course,Total_Seats,Seats_Filled\r\n2023,MBA,50,40\r\n2023,MCA,60,30\r\n"
	records, err := ParseRecords(input)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 30, records[1].SeatsFilled)
}

func TestParserLogsDroppedRows(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	parser := NewParser(logger)

	report, err := parser.Parse("Year,Course,Total_Seats,Seats_Filled\n2023,MBA,50,40\nbad,MCA,60,30")
	require.NoError(t, err)
	assert.Len(t, report.Records, 1)

	testutil.AssertLogContains(t, handler, slog.LevelWarn, "Skipping invalid row")
	testutil.AssertLogAttr(t, handler, "line", 3)
	testutil.AssertLogAttr(t, handler, "component", "parser")
}

func TestParseReader(t *testing.T) {
	parser := NewParser(nil)
	report, err := parser.ParseReader(strings.NewReader(testutil.SampleSeatCSV))
	require.NoError(t, err)
	assert.Len(t, report.Records, 4)
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr error
	}{
		{"2023", 2023, nil},
		{"2023abc", 2023, nil},
		{"12.7", 12, nil},
		{"-5", -5, nil},
		{"+7", 7, nil},
		{"9223372036854775807", math.MaxInt, nil},
		{"", 0, errNotInteger},
		{"abc", 0, errNotInteger},
		{"-", 0, errNotInteger},
		{".5", 0, errNotInteger},
		{"99999999999999999999", 0, errIntegerRange},
		{"-99999999999999999999abc", 0, errIntegerRange},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLeadingInt(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLeadingFloat(t *testing.T) {
	tests := []struct {
		input string
		want  *float64
	}{
		{"4500", testutil.Float(4500)},
		{"4500 INR", testutil.Float(4500)},
		{"0.75", testutil.Float(0.75)},
		{".5", testutil.Float(0.5)},
		{"1e3", testutil.Float(1000)},
		{"-0.2", testutil.Float(-0.2)},
		{"", nil},
		{"N/A", nil},
		{"₹4500", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLeadingFloat(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}
