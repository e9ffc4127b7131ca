// Package exporter renders an analysis result as report files.
//
// Three formats are supported:
//
//	csv   summary, course and year tables, marshalled with gocsv
//	xlsx  the same tables on Summary, Courses and Years sheets
//	txt   a plain text summary for terminals and downloads
//
// Write renders to any io.Writer; ReportExporter writes files into a
// directory:
//
//	exp := exporter.NewReportExporter("reports", logger)
//	paths, err := exp.ExportAll("pgcet_2023", result)
//
// Undefined rates (courses or years with zero seats) are written as empty
// cells, or "n/a" in the text summary.
package exporter
