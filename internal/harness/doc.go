// Package harness provides conformance testing for circegen.
//
// The harness loads scenario files, runs their input through the parser and
// the renderer, and checks the resulting record and companion object against
// the scenario's expectations.
//
// # Scenario Format
//
// Scenarios are YAML files validated against an embedded CUE schema:
//
//	name: something
//	description: "Two plain fields"
//	input: "case class Something(number: Int, whatever: String)"
//	key_case: verbatim
//	expect:
//	  name: Something
//	  fields: [number, whatever]
//	  types: [Int, String]
//	golden: true
//
// A scenario that should be rejected sets expect.malformed to true and
// nothing else under expect.
//
// # Checks
//
// Besides the explicit expectations, every successful run is checked for the
// invariants of the rendered output: the companion object is named after the
// record, both codecs declare forProductN with N equal to the field count,
// and the field keys appear in declaration order.
//
// # Golden Files
//
// When golden is true the rendered output is compared byte for byte with
// <golden-dir>/<name>.golden. Tests use RunWithGolden; the CLI uses
// CompareGolden, which can also rewrite the files.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/something.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
