package fuzz

import (
	"strings"

	"github.com/RedTeamPentesting/slotfuzz/request"
)

const helpShort = "Send random slot patterns to a target"

var helpLong = strings.TrimSpace(`
The 'fuzz' command generates random patterns of four slots separated by "@",
e.g. "5@@12@31". Each slot is either empty or a number from the range set with
--range (default 0-31). The patterns are base64 encoded and appended to the
base URL. Requests are sent one after the other.

Each response is saved to a file in the artifact directory, a record for each
request is written to the JSON output file when the run ends or is interrupted
with Ctrl+C. Responses with status 400 and above, and responses with status 200
and an empty body are marked as interesting.
` + request.LongHelp)

const helpExamples = `
Send all 1185921 possible patterns (in random order, with repetitions) to the
parameter of index.php:

    slotfuzz fuzz 'https://example.com/ko/index.php?'

Send 1000 patterns, at most 20 per second, without asking for confirmation:

    slotfuzz fuzz --max-patterns 1000 \
      --requests-per-second 20 \
      --yes \
      'https://example.com/ko/index.php?'

Repeat a previous run, writing results to a different file:

    slotfuzz fuzz --seed 1712345678 \
      --output second_run.json \
      --artifact-dir second_run \
      'https://example.com/ko/index.php?id='

Send requests through a socks5 proxy:

    slotfuzz fuzz --proxy socks5://127.0.0.1:1080 'https://example.com/?'
`
