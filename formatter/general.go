package formatter

// generalTemplate renders one issue: header, the offending lines with the
// symbol underlined, then the optional suggestion and note.
const generalTemplate = `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent -}}
{{suggestion .Suggestion .Padding .MaxLineNumWidth .StartLine -}}
{{note .Note}}
`
