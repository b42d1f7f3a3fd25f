package test

import (
	"strings"

	"github.com/RedTeamPentesting/slotfuzz/request"
)

const helpShort = "Send the request for one pattern and show the result"

var helpLong = strings.TrimSpace(`
The 'test' command can be used to send the request for a single pattern to the
server and display the response. The options are the same as for the 'fuzz'
command, so they can directly be applied to it once the request works.
` + request.LongHelp)

const helpExamples = `
Send the pattern "5@@12@31" to the server and display the request and the
response:

    slotfuzz test --show-request 'https://example.com/ko/index.php?' '5@@12@31'
`
