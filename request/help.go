package request

// LongHelp is a text which describes how constructing a request works. It is
// typically used in the long help text.
const LongHelp = `
For each pattern an HTTP GET request is sent. The URL is built by appending the
base64 encoded pattern to the base URL without any separator, so the base URL
usually ends with "?" or "=". Redirects are not followed.
`
