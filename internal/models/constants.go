package models

const (
	ArtifactTag = "gnexus_artifact"
	FileTag     = "file"

	ArtifactRegex    = `(?s)<` + ArtifactTag + `(\s[^>]*)?>(.*?)</` + ArtifactTag + `>`
	FileRegex        = `(?s)<` + FileTag + `(\s(?:[^>]*[^/>])?)?>(.*?)</` + FileTag + `>`
	FenceOpenRegex   = "^```[\\w-]*\\n?"
	FenceCloseRegex  = "\\n?```$"
	PageBreakRegex   = `(?i)<hr\s*/?>`
	CodeBlockRegex   = "(?s)```.*?```"
	CodeFenceRegex   = "(?s)^```(\\w*)\\n(.*?)```$"
	ImageRegex       = `!\[(.*?)\]\((.*?)\)`
	JSONFenceOpen    = "^```(?:json)?[ \\t]*\\n?"
	JSONFenceClose   = "\\n?```$"
	AttachmentHeader = "[Attached File Content: %s]\n%s\n[End of File]"
	ImageSettingNote = "\n\n[SYSTEM NOTE: Image Generation Active. Preferences:\n- Aspect Ratio: %s\n- Style: %s]"
)

var (
	SystemPromptTemplate = `You are a senior software architect and technical writer.
Answer with a single JSON object and nothing else:
{
    "selectedModel": "string",
    "category": "string",
    "reasoning": "string",
    "response": "string (Markdown + XML artifacts)"
}

ARTIFACT PROTOCOL
- Wrap a multi-file project in ONE <` + ArtifactTag + ` title="..." type="project">.
- Every file goes in <` + FileTag + ` name="path/to/file" language="lang"> ... </` + FileTag + `>.

DOCUMENTS (A4 PAGINATION)
- Reports, essays, proposals, agreements and resumes use type="document".
- Put a line with only --- (blank line before and after) between pages.
- Alternatively provide one file per page (page1.html, page2.html, ...).

Example:
<` + ArtifactTag + ` title="Annual Tech Report" type="document">
<` + FileTag + ` name="annual_report.md" language="markdown">
# Annual Technology Report

---

## Executive Summary
</` + FileTag + `>
</` + ArtifactTag + `>
`
)
