// Package shared holds helpers used by more than one package.
//
// The testutil subpackage provides a buffered slog handler for asserting
// log output, and seat dataset fixtures:
//
//	func TestSomething(t *testing.T) {
//	    logger, handler := testutil.NewTestLogger(t)
//	    parser := dataprocessing.NewParser(logger)
//	    _, _ = parser.Parse(testutil.SampleSeatCSV)
//	    testutil.AssertNoErrors(t, handler)
//	}
//
// Nothing here may contain analysis logic.
package shared
