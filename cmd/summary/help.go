package summary

import "strings"

const helpShort = "Print statistics for the JSON results of a run"

var helpLong = strings.TrimSpace(`
The 'summary' command loads the JSON results written by the 'fuzz' command and
prints the same statistics shown at the end of a run. The duration is the time
between the first and the last record. If no file is given, the default output
file of the 'fuzz' command is used.
`)

const helpExamples = `
Show statistics and all interesting records of the last run:

    slotfuzz summary --interesting fuzzer_log.json
`
