package show

import (
	"strings"

	"github.com/RedTeamPentesting/slotfuzz/request"
)

const helpShort = "Construct and display the HTTP request for a pattern"

var helpLong = strings.TrimSpace(`
The 'show' command can be used to construct the request for a pattern and
inspect it, without sending it. If no pattern is given, a random one is used.
The options are the same as for the 'fuzz' command.
` + request.LongHelp)

const helpExamples = `
Display the request sent for the pattern "5@@12@31":

    slotfuzz show 'https://example.com/ko/index.php?' '5@@12@31'

Display the request for a random pattern with an additional header:

    slotfuzz show --header 'Cookie: session=1234' 'https://example.com/?id='
`
