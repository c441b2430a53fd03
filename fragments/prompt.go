package fragments

import "text/template"

// DefaultPrompt is the key-rates loading prompt.
const DefaultPrompt = `OpenAPI documentation: {{.OpenAPI}}
Server address: {{.ServerURL}}
Permitted attributes: {{.Attributes}}
Permitted document names: {{.Names}}

Read the file. Note the date its contents take effect from; it is important.
Every number must appear in the answer exactly as in the source document,
keeping decimal fractions, without rounding or conversion to integers.
Following the OpenAPI documentation, build the requests that load the data onto the server.
When building the JSON bodies, transliterate the column names according to the attribute list.
No other names may be used.
Send a separate request for each kind of data.
Put the heading from the file into ` + "`comment`" + `.
` + "`name`" + ` must be unique for each kind of data; pick a matching value from the permitted document names.

If no matching value exists for an attribute or for ` + "`name`" + `, do not send a request and report an error instead.

Send the data to the server.
`

var defaultTemplate = template.Must(template.New("prompt").Parse(DefaultPrompt))
